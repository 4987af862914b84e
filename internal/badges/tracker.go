package badges

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// trackerRecord is the persisted shape: ids of badges already celebrated.
type trackerRecord struct {
	SeenBadgeIDs []string `json:"seenBadgeIds"`
}

// Tracker remembers which earned badges the user has already acknowledged
// so each unlock celebrates exactly once. One pending celebration at a
// time; further unlocks queue behind the dismissal.
type Tracker struct {
	filePath string
	record   trackerRecord
	pending  *Badge
}

// NewTracker creates a tracker persisting to filePath. A missing or
// unreadable file means nothing has been seen yet.
func NewTracker(filePath string) *Tracker {
	t := &Tracker{filePath: filePath}
	data, err := os.ReadFile(filePath)
	if err == nil {
		_ = json.Unmarshal(data, &t.record)
	}
	return t
}

// Check scans the earned badges for the first unseen one and stages it as
// the pending celebration. No-op while a celebration is already pending.
func (t *Tracker) Check(earned []Badge) *Badge {
	if t.pending != nil {
		return t.pending
	}
	for _, b := range earned {
		if !b.Earned || t.seen(b.ID) {
			continue
		}
		staged := b
		t.pending = &staged
		break
	}
	return t.pending
}

// Dismiss acknowledges the pending badge and persists it as seen.
func (t *Tracker) Dismiss() error {
	if t.pending == nil {
		return nil
	}
	t.record.SeenBadgeIDs = append(t.record.SeenBadgeIDs, t.pending.ID)
	t.pending = nil
	return t.save()
}

// Reset clears the persisted record (sign-out).
func (t *Tracker) Reset() error {
	t.record = trackerRecord{}
	t.pending = nil
	if err := os.Remove(t.filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove badge record %s: %w", t.filePath, err)
	}
	return nil
}

func (t *Tracker) seen(id string) bool {
	for _, s := range t.record.SeenBadgeIDs {
		if s == id {
			return true
		}
	}
	return false
}

func (t *Tracker) save() error {
	data, err := json.MarshalIndent(t.record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal badge record: %w", err)
	}
	if err := os.WriteFile(t.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write badge record %s: %w", t.filePath, err)
	}
	return nil
}
