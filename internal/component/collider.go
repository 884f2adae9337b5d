package component

import "github.com/falldown/falldown/internal/collision"

// Collision group numbers.
const (
	GroupPlayer uint = 0
	GroupEnemy  uint = 1
)

// PlayerGroups collide with enemies only.
func PlayerGroups() collision.Groups {
	return collision.NewGroups().WithMembership(GroupPlayer).WithWhitelist(GroupEnemy)
}

// EnemyGroups collide with the player only.
func EnemyGroups() collision.Groups {
	return collision.NewGroups().WithMembership(GroupEnemy).WithWhitelist(GroupPlayer)
}

// Collider describes an entity's presence in the spatial index. The shape,
// groups and query are fixed at creation. Handle is a lookup key into the
// index, set by the collision sync system once the collider is registered;
// the index owns the entry itself.
type Collider struct {
	shape  collision.Shape
	groups collision.Groups
	query  collision.Query

	Handle collision.Handle
}

func NewCollider(shape collision.Shape, groups collision.Groups, query collision.Query) *Collider {
	return &Collider{shape: shape, groups: groups, query: query}
}

func (c *Collider) Shape() collision.Shape   { return c.shape }
func (c *Collider) Groups() collision.Groups { return c.groups }
func (c *Collider) Query() collision.Query   { return c.query }

// Synced reports whether the collider has an index entry.
func (c *Collider) Synced() bool { return c.Handle.Valid() }

// ColliderHandle is the Removed-event projection for colliders: only the
// handle is needed to release the index entry.
func ColliderHandle(c *Collider) collision.Handle { return c.Handle }
