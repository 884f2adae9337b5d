package component

// Player marks the collector. Trail remembers recent x positions so the
// collector can tilt in the direction it is travelling.
type Player struct {
	Trail *Trail
}

func NewPlayer(trailLen int) *Player {
	return &Player{Trail: NewTrail(trailLen)}
}

// FollowPointer eases an entity toward the pointer each tick by the given
// fraction of the remaining distance per axis.
type FollowPointer struct {
	XRatio, YRatio float64
}

// Trail is a fixed-size ring of samples.
type Trail struct {
	samples []float64
	next    int
	full    bool
}

func NewTrail(n int) *Trail {
	if n < 1 {
		n = 1
	}
	return &Trail{samples: make([]float64, n)}
}

func (t *Trail) Push(v float64) {
	t.samples[t.next] = v
	t.next = (t.next + 1) % len(t.samples)
	if t.next == 0 {
		t.full = true
	}
}

// Oldest returns the earliest retained sample.
func (t *Trail) Oldest() (float64, bool) {
	if !t.full {
		if t.next == 0 {
			return 0, false
		}
		return t.samples[0], true
	}
	return t.samples[t.next], true
}
