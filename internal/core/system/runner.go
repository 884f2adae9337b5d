package system

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once. The first failing system stops the tick:
// later systems are skipped except those in PhaseCleanup, which still run so
// queued deletions are flushed. The first error is returned, joined with any
// cleanup errors.
func (r *Runner) Tick(dt time.Duration) error {
	r.ensureSorted()
	r.ticks++
	for i, s := range r.systems {
		if err := s.Update(dt); err != nil {
			err = fmt.Errorf("tick %d: %s phase: %T: %w", r.ticks, s.Phase(), s, err)
			if s.Phase() == PhaseCleanup {
				return err
			}
			if cerr := r.cleanupFrom(i+1, dt); cerr != nil {
				return errors.Join(err, cerr)
			}
			return err
		}
	}
	return nil
}

// cleanupFrom runs the cleanup-phase systems at or after index from.
func (r *Runner) cleanupFrom(from int, dt time.Duration) error {
	var errs []error
	for _, s := range r.systems[from:] {
		if s.Phase() != PhaseCleanup {
			continue
		}
		if err := s.Update(dt); err != nil {
			errs = append(errs, fmt.Errorf("tick %d: %s phase: %T: %w", r.ticks, s.Phase(), s, err))
		}
	}
	return errors.Join(errs...)
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if err := s.Update(dt); err != nil {
			return fmt.Errorf("%s phase: %T: %w", phase, s, err)
		}
	}
	return nil
}

// Ticks returns the number of completed or attempted Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
