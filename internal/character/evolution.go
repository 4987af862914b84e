package character

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// PendingEvolution flags a stage transition awaiting its one-time
// celebration.
type PendingEvolution struct {
	FromStageIndex int `json:"fromStageIndex"`
	ToStageIndex   int `json:"toStageIndex"`
}

// evolutionRecord is the persisted shape. Only the last seen stage index
// survives restarts; a pending celebration is re-derived on the next check.
type evolutionRecord struct {
	LastSeenStageIndex int `json:"lastSeenStageIndex"`
}

// Detector tracks the last stage index the user has acknowledged and diffs
// it against freshly computed state to decide whether a celebration should
// fire. Idempotent under repeated checks with the same stage index.
type Detector struct {
	filePath string
	record   evolutionRecord
	pending  *PendingEvolution
}

// NewDetector creates a detector persisting to filePath. A missing or
// unreadable file falls back to stage 0; the next completion re-triggers
// detection if needed.
func NewDetector(filePath string) *Detector {
	d := &Detector{filePath: filePath}
	data, err := os.ReadFile(filePath)
	if err == nil {
		_ = json.Unmarshal(data, &d.record)
	}
	return d
}

// LastSeenStageIndex returns the highest stage index already celebrated.
func (d *Detector) LastSeenStageIndex() int {
	return d.record.LastSeenStageIndex
}

// Check compares the current stage index against the last seen one and
// stages a pending celebration when the character has advanced. Repeated
// calls with the same index never produce a duplicate celebration.
func (d *Detector) Check(currentStageIndex int) *PendingEvolution {
	if currentStageIndex <= d.record.LastSeenStageIndex {
		return d.pending
	}
	d.pending = &PendingEvolution{
		FromStageIndex: d.record.LastSeenStageIndex,
		ToStageIndex:   currentStageIndex,
	}
	return d.pending
}

// Dismiss acknowledges the pending celebration, advancing the persisted
// last-seen index so it never fires again.
func (d *Detector) Dismiss() error {
	if d.pending == nil {
		return nil
	}
	d.record.LastSeenStageIndex = d.pending.ToStageIndex
	d.pending = nil
	return d.save()
}

// Reset clears the persisted record (sign-out).
func (d *Detector) Reset() error {
	d.record = evolutionRecord{}
	d.pending = nil
	if err := os.Remove(d.filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove evolution record %s: %w", d.filePath, err)
	}
	return nil
}

func (d *Detector) save() error {
	data, err := json.MarshalIndent(d.record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evolution record: %w", err)
	}
	if err := os.WriteFile(d.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write evolution record %s: %w", d.filePath, err)
	}
	return nil
}
