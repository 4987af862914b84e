package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/momentumhq/momentum/models"
)

const (
	defaultDataFile = "plans.json"
	dataFileKey     = "dataFile"
	checksumSuffix  = ".checksum"
)

// FilePlanStore implements PlanStore on a single JSON file. It uses
// file-level locking so two momentum processes cannot interleave writes, and
// a checksum sidecar to detect corruption or tampering on load.
type FilePlanStore struct {
	filePath string
	flk      *flock.Flock
}

// NewFilePlanStore creates a new instance of FilePlanStore.
// It does not initialize the store; Initialize must be called separately.
func NewFilePlanStore() *FilePlanStore {
	return &FilePlanStore{}
}

// Initialize configures the FilePlanStore. It expects a 'dataFile' key in the
// config map specifying the path to the plans file, defaulting to
// 'plans.json' in the current directory. The parent directory is created if
// needed and a file lock is established on the data file path.
func (s *FilePlanStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// LoadPlans reads and verifies the plan collection from disk.
func (s *FilePlanStore) LoadPlans() ([]models.GoalPlan, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("could not lock plans file for load: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.loadPlansInternal()
}

// loadPlansInternal assumes the file lock is held.
func (s *FilePlanStore) loadPlansInternal() ([]models.GoalPlan, error) {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Fresh install: no plans yet. Make sure a stale checksum file
			// doesn't linger.
			_ = os.Remove(checksumFilePath)
			return []models.GoalPlan{}, nil
		}
		return nil, fmt.Errorf("failed to read plans file %s: %w", s.filePath, err)
	}

	// Verify checksum if the sidecar exists. Data written before checksums
	// were introduced loads anyway; the next save creates the sidecar.
	if _, statErr := os.Stat(checksumFilePath); statErr == nil {
		expected, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read checksum file %s: %w", checksumFilePath, readErr)
		}
		actual := calculateChecksum(data)
		if actual != strings.TrimSpace(string(expected)) {
			return nil, fmt.Errorf("checksum mismatch for %s - file is corrupt or tampered", s.filePath)
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, statErr)
	}

	if len(data) == 0 {
		return []models.GoalPlan{}, nil
	}

	var list models.PlanList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plans from %s: %w", s.filePath, err)
	}
	if list.Plans == nil {
		list.Plans = []models.GoalPlan{}
	}
	return list.Plans, nil
}

// SavePlans marshals the collection, writes it to a temp file and renames it
// into place, then does the same for the checksum sidecar. The rename keeps
// a crash mid-write from ever exposing a half-written collection.
func (s *FilePlanStore) SavePlans(plans []models.GoalPlan) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock plans file for save: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	list := models.PlanList{Plans: plans, TotalCount: len(plans)}
	marshaled, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plans: %w", err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaled, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary plans file %s: %w", tempFilePath, err)
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaled)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary plans file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("plans file %s updated but checksum file %s was not: %w - store may report corruption on next load", s.filePath, checksumFilePath, err)
	}

	return nil
}

// Clear removes the plans file and its checksum sidecar.
func (s *FilePlanStore) Clear() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock plans file for clear: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.Remove(s.filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove plans file %s: %w", s.filePath, err)
	}
	_ = os.Remove(s.filePath + checksumSuffix)
	return nil
}

// Close releases the file lock. flock.Unlock is idempotent and safe to call
// even when the lock is not held by this process.
func (s *FilePlanStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
