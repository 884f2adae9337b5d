package world

import (
	"fmt"

	"github.com/falldown/falldown/internal/collision"
	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
)

// ContactEvent is a contact transition between two entities' colliders.
type ContactEvent struct {
	A, B ecs.EntityID
	Kind collision.ContactKind
}

// Outcome is the result of the collector touching a block.
type Outcome uint8

const (
	Caught Outcome = iota + 1
	Missed
)

func (o Outcome) String() string {
	switch o {
	case Caught:
		return "caught"
	case Missed:
		return "missed"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// CollectionEvent records the collector touching a block. A caught block
// has been queued for deletion; a missed one stays in play.
type CollectionEvent struct {
	Player      ecs.EntityID
	Block       ecs.EntityID
	PlayerColor component.Color
	BlockColor  component.Color
	Outcome     Outcome
}
