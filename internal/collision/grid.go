package collision

import "math"

// grid is the broad phase: a sparse cell map. Each object is filed under
// every cell its loosened AABB touches; only objects sharing a cell become
// candidate pairs for the narrow phase.
// Accessed only from the game loop goroutine; no locks.
type grid struct {
	cellSize float64
	cells    map[cellKey]map[Handle]struct{}
	spans    map[Handle]cellSpan
}

type cellKey struct {
	cx, cy int32
}

// cellSpan is the inclusive rectangle of cells an object occupies.
type cellSpan struct {
	min, max cellKey
}

func newGrid(cellSize float64) *grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &grid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[Handle]struct{}),
		spans:    make(map[Handle]cellSpan),
	}
}

func (g *grid) toCellCoord(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

func (g *grid) span(box AABB) cellSpan {
	return cellSpan{
		min: cellKey{g.toCellCoord(box.Min.X), g.toCellCoord(box.Min.Y)},
		max: cellKey{g.toCellCoord(box.Max.X), g.toCellCoord(box.Max.Y)},
	}
}

// insert files h under every cell of box.
func (g *grid) insert(h Handle, box AABB) {
	sp := g.span(box)
	g.spans[h] = sp
	for cx := sp.min.cx; cx <= sp.max.cx; cx++ {
		for cy := sp.min.cy; cy <= sp.max.cy; cy++ {
			k := cellKey{cx, cy}
			cell := g.cells[k]
			if cell == nil {
				cell = make(map[Handle]struct{})
				g.cells[k] = cell
			}
			cell[h] = struct{}{}
		}
	}
}

// remove takes h out of every cell it occupies.
func (g *grid) remove(h Handle) {
	sp, ok := g.spans[h]
	if !ok {
		return
	}
	delete(g.spans, h)
	for cx := sp.min.cx; cx <= sp.max.cx; cx++ {
		for cy := sp.min.cy; cy <= sp.max.cy; cy++ {
			k := cellKey{cx, cy}
			cell := g.cells[k]
			if cell == nil {
				continue
			}
			delete(cell, h)
			if len(cell) == 0 {
				delete(g.cells, k)
			}
		}
	}
}

// move refiles h when its cell span changed.
func (g *grid) move(h Handle, box AABB) {
	if sp, ok := g.spans[h]; ok && sp == g.span(box) {
		return
	}
	g.remove(h)
	g.insert(h, box)
}

// candidates returns every distinct pair of handles sharing at least one cell.
func (g *grid) candidates() map[pair]struct{} {
	out := make(map[pair]struct{})
	members := make([]Handle, 0, 16)
	for _, cell := range g.cells {
		if len(cell) < 2 {
			continue
		}
		members = members[:0]
		for h := range cell {
			members = append(members, h)
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				out[makePair(members[i], members[j])] = struct{}{}
			}
		}
	}
	return out
}
