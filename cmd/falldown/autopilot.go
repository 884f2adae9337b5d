package main

import (
	"math"

	"github.com/falldown/falldown/internal/component"
	"github.com/falldown/falldown/internal/core/ecs"
	"github.com/falldown/falldown/internal/world"
)

const (
	pilotHeight = 0.05 // pointer y, near the bottom edge
	pilotStep   = 0.02 // max pointer travel per tick
)

// autopilot stands in for the mouse: it steers toward the lowest falling
// block that matches the collector's colour.
type autopilot struct {
	ws     *world.State
	player ecs.EntityID
	x      float64
}

func newAutopilot(ws *world.State, player ecs.EntityID) *autopilot {
	return &autopilot{ws: ws, player: player, x: 0.5}
}

func (a *autopilot) Pointer() (float64, float64, bool) {
	aff, ok := a.ws.Affiliations.Get(a.player)
	if !ok {
		return 0, 0, false
	}

	target, lowest := a.x, math.Inf(1)
	ecs.Each2(a.ws.Falling, a.ws.Transforms, func(id ecs.EntityID, _ *component.FallingObject, tr *component.Transform) {
		if a.ws.World.Queued(id) {
			return
		}
		block, ok := a.ws.Affiliations.Get(id)
		if !ok || block.Color != aff.Color || tr.Y >= lowest {
			return
		}
		lowest = tr.Y
		target = tr.X / a.ws.Arena.Width
	})

	d := max(-pilotStep, min(pilotStep, target-a.x))
	a.x = max(0, min(0.999, a.x+d))
	return a.x, pilotHeight, true
}
