package program

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/momentumhq/momentum/internal/clock"
)

// Service manages the single active enrollment. One program at a time;
// enrolling again replaces the current one. Persistence goes through an
// afero filesystem so tests run fully in memory. Same style as the plan
// store: in-memory state mutates first, persistence failures are logged
// but never roll a mutation back.
type Service struct {
	fs       afero.Fs
	filePath string
	clock    clock.Clock

	active *Enrollment
}

// NewService wires the enrollment store. Call Hydrate before first use.
func NewService(fs afero.Fs, filePath string, clk clock.Clock) *Service {
	return &Service{fs: fs, filePath: filePath, clock: clk}
}

// Hydrate loads the enrollment from storage. A missing file means no
// enrollment; a corrupt file is treated the same and logged.
func (s *Service) Hydrate() error {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.active = nil
			return nil
		}
		return fmt.Errorf("failed to read program enrollment %s: %w", s.filePath, err)
	}
	var e Enrollment
	if err := json.Unmarshal(data, &e); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: corrupt program enrollment, starting fresh: %v\n", err)
		s.active = nil
		return nil
	}
	s.active = &e
	return nil
}

// Active returns a copy of the current enrollment, or nil.
func (s *Service) Active() *Enrollment {
	if s.active == nil {
		return nil
	}
	e := *s.active
	e.CompletedDays = append([]int(nil), s.active.CompletedDays...)
	return &e
}

// ActiveProgram returns the catalog entry for the current enrollment, or
// nil.
func (s *Service) ActiveProgram() *CreatorProgram {
	if s.active == nil {
		return nil
	}
	return Lookup(s.active.ProgramID)
}

// Enroll starts the named program at day 1, replacing any current
// enrollment. Unknown ids are a no-op.
func (s *Service) Enroll(programID string) {
	if Lookup(programID) == nil {
		return
	}
	s.active = &Enrollment{
		ProgramID:     programID,
		CurrentDay:    1,
		StartedAt:     s.clock.Now(),
		CompletedDays: []int{},
	}
	s.persist()
}

// TodayDay returns the content for the enrollment's current day, or nil.
func (s *Service) TodayDay() *Day {
	p := s.ActiveProgram()
	if p == nil {
		return nil
	}
	for i := range p.Days {
		if p.Days[i].Day == s.active.CurrentDay {
			return &p.Days[i]
		}
	}
	return nil
}

// CompletedToday reports whether a program day was already completed on
// the clock's current day.
func (s *Service) CompletedToday() bool {
	if s.active == nil || s.active.LastCompletedAt == nil {
		return false
	}
	return clock.DayKey(*s.active.LastCompletedAt) == s.clock.TodayKey()
}

// Progress returns the completed fraction of the program, 0 when idle.
func (s *Service) Progress() float64 {
	p := s.ActiveProgram()
	if p == nil || p.DurationDays == 0 {
		return 0
	}
	return float64(len(s.active.CompletedDays)) / float64(p.DurationDays)
}

// CompleteDay marks the current day done and advances. Completing the
// final day ends the program and clears the enrollment. No-ops: no
// enrollment, day already completed, or a day already done today.
func (s *Service) CompleteDay() {
	p := s.ActiveProgram()
	if p == nil || s.CompletedToday() {
		return
	}
	dayNum := s.active.CurrentDay
	for _, d := range s.active.CompletedDays {
		if d == dayNum {
			return
		}
	}

	now := s.clock.Now()
	s.active.CompletedDays = append(s.active.CompletedDays, dayNum)
	s.active.LastCompletedAt = &now

	if dayNum+1 > p.DurationDays {
		// Program complete: clear the enrollment.
		s.active = nil
		s.persist()
		return
	}
	s.active.CurrentDay = dayNum + 1
	s.persist()
}

// Abandon leaves the current program, discarding its progress.
func (s *Service) Abandon() {
	s.active = nil
	s.persist()
}

// Reset clears all program data (sign-out).
func (s *Service) Reset() error {
	s.active = nil
	if err := s.fs.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear program enrollment %s: %w", s.filePath, err)
	}
	return nil
}

func (s *Service) persist() {
	if s.active == nil {
		if err := s.fs.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to clear program enrollment: %v\n", err)
		}
		return
	}
	data, err := json.MarshalIndent(s.active, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal program enrollment: %v\n", err)
		return
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create program data dir: %v\n", err)
		return
	}
	if err := afero.WriteFile(s.fs, s.filePath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist program enrollment: %v\n", err)
	}
}
