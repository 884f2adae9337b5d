package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/collision"
	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/core/event"
	coresys "github.com/falldown/falldown/internal/core/system"
	"github.com/falldown/falldown/internal/world"
)

// ContactClass is the game meaning of a contact between two entities.
type ContactClass uint8

const (
	ContactAnomaly ContactClass = iota
	ContactCatch
)

func (c ContactClass) String() string {
	if c == ContactCatch {
		return "catch"
	}
	return "anomaly"
}

// Classification is the result of Classify. It depends only on the two
// affiliations, never on their order.
type Classification struct {
	Class       ContactClass
	Correct     bool
	PlayerColor component.Color
	EnemyColor  component.Color
}

// Classify applies the catch rule: a player touching an enemy is a catch,
// correct when the colours match. Any other pairing, including a missing
// affiliation (nil), is an anomaly.
func Classify(a, b *component.Affiliation) Classification {
	if a == nil || b == nil {
		return Classification{Class: ContactAnomaly}
	}
	p, e := *a, *b
	if p.Side == component.SideEnemy {
		p, e = e, p
	}
	if p.Side != component.SidePlayer || e.Side != component.SideEnemy {
		return Classification{Class: ContactAnomaly}
	}
	return Classification{
		Class:       ContactCatch,
		Correct:     p.Color == e.Color,
		PlayerColor: p.Color,
		EnemyColor:  e.Color,
	}
}

// ObjectCollectionSystem reads entity contacts and applies the catch rule.
// A correct catch deletes the block; a wrong colour is recorded as a miss
// and the block stays in play.
// Phase 4 (Resolve).
type ObjectCollectionSystem struct {
	world  *world.State
	log    *zap.Logger
	reader event.ReaderID
}

func NewObjectCollectionSystem(ws *world.State, log *zap.Logger) *ObjectCollectionSystem {
	return &ObjectCollectionSystem{
		world:  ws,
		log:    log,
		reader: ws.Contacts().Register(),
	}
}

func (s *ObjectCollectionSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ObjectCollectionSystem) Update(_ time.Duration) error {
	events, err := s.world.Contacts().Read(s.reader)
	if err != nil {
		return fmt.Errorf("read contact events: %w", err)
	}
	for ev := range events {
		if ev.Kind != collision.ContactStarted {
			continue
		}
		s.resolve(ev.A, ev.B)
	}
	return nil
}

func (s *ObjectCollectionSystem) resolve(a, b ecs.EntityID) {
	affA, _ := s.world.Affiliations.Get(a)
	affB, _ := s.world.Affiliations.Get(b)

	cls := Classify(affA, affB)
	if cls.Class != ContactCatch {
		s.log.Info("unexpected contact",
			zap.Uint64("a", uint64(a)),
			zap.Uint64("b", uint64(b)),
			zap.Stringer("affiliation_a", optAffiliation{affA}),
			zap.Stringer("affiliation_b", optAffiliation{affB}),
		)
		return
	}

	player, block := a, b
	if affA.Side == component.SideEnemy {
		player, block = b, a
	}
	ev := world.CollectionEvent{
		Player:      player,
		Block:       block,
		PlayerColor: cls.PlayerColor,
		BlockColor:  cls.EnemyColor,
		Outcome:     world.Missed,
	}
	if cls.Correct {
		if err := s.world.World.Delete(block); err != nil {
			s.log.Info("caught block already gone",
				zap.Uint64("block", uint64(block)),
				zap.Error(err))
			return
		}
		ev.Outcome = world.Caught
	}
	event.Emit(s.world.Bus, ev)
}

// optAffiliation prints a possibly missing affiliation.
type optAffiliation struct{ a *component.Affiliation }

func (o optAffiliation) String() string {
	if o.a == nil {
		return "none"
	}
	return o.a.String()
}
