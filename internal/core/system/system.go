package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: pointer → player transforms
	PhaseSpawn                  // 1: create new falling objects
	PhaseUpdate                 // 2: movement, off-screen deletion requests
	PhaseCollision              // 3: sync spatial index, emit contacts
	PhaseResolve                // 4: classify contacts, request deletions
	PhaseDispatch               // 5: deliver bus events to subscribers
	PhaseCleanup                // 6: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseSpawn:
		return "spawn"
	case PhaseUpdate:
		return "update"
	case PhaseCollision:
		return "collision"
	case PhaseResolve:
		return "resolve"
	case PhaseDispatch:
		return "dispatch"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements. An error aborts the
// remainder of the tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
