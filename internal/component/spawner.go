package component

import "time"

// Spawner emits one falling object every Interval.
type Spawner struct {
	Interval time.Duration
	Radius   float64
	elapsed  time.Duration
}

func NewSpawner(interval time.Duration, radius float64) *Spawner {
	return &Spawner{Interval: interval, Radius: radius}
}

// Advance adds dt and reports whether the interval elapsed, carrying the
// remainder into the next period.
func (s *Spawner) Advance(dt time.Duration) bool {
	if s.Interval <= 0 {
		return false
	}
	s.elapsed += dt
	if s.elapsed < s.Interval {
		return false
	}
	s.elapsed -= s.Interval
	if s.elapsed >= s.Interval {
		s.elapsed = 0 // never burst after a stall
	}
	return true
}
