package engine

// MoveResult reports what a Move did.
type MoveResult struct {
	Moved     bool  `json:"moved"`
	Gained    int   `json:"gained"`
	Merges    int   `json:"merges"`
	Spawned   *Tile `json:"-"`
	SpawnedAt Cell  `json:"spawned_at"`
}

// Move slides every tile toward dir, merging equal neighbours once per move.
// If anything moved, one random tile is spawned and the game-over check runs.
// An unrecognized direction, or a call made while another Move or NewGame is
// in progress, leaves the engine untouched.
func (e *Engine) Move(dir Direction) MoveResult {
	var res MoveResult

	vector, ok := dir.Vector()
	if !ok || e.busy {
		return res
	}
	e.busy = true
	defer func() { e.busy = false }()

	traversal := BuildTraversal(vector, e.cfg.Size)
	e.prepareTiles()

	for _, x := range traversal.X {
		for _, y := range traversal.Y {
			cell := Cell{X: x, Y: y}
			tile := e.grid.CellAt(cell)
			if tile == nil {
				continue
			}

			farthest, next := e.findFarthestPosition(cell, vector)
			final := farthest

			if target := e.grid.CellAt(next); target != nil && target.Value == tile.Value && target.MergedFrom == nil {
				merged := e.tiles.Create(tile.Value*2, false, &MergePair{A: tile.ID, B: target.ID})
				e.grid.Place(merged, next)
				e.grid.Remove(cell)
				final = next

				e.session.Score += merged.Value
				res.Gained += merged.Value
				res.Merges++
				if e.cfg.WinValue > 0 && merged.Value == e.cfg.WinValue {
					e.session.Won = true
				}
			} else {
				e.grid.MoveTile(tile, cell, farthest)
			}

			if final != cell {
				res.Moved = true
			}
		}
	}

	if !res.Moved {
		return res
	}

	e.moves++
	if spawned := e.spawnTile(); spawned != nil {
		res.Spawned = spawned
		res.SpawnedAt = e.cellOf(spawned)
	}
	if !e.MovesAvailable() {
		e.session.Over = true
	}
	return res
}

// prepareTiles clears merge records left over from the previous move.
func (e *Engine) prepareTiles() {
	e.grid.EachCell(func(_ Cell, t *Tile) {
		if t != nil {
			t.MergedFrom = nil
		}
	})
}

// findFarthestPosition slides from cell along v. farthest is the last empty
// cell reached (or cell itself); next is the first blocked or off-grid cell.
func (e *Engine) findFarthestPosition(cell Cell, v Vector) (farthest, next Cell) {
	next = cell
	for {
		farthest = next
		next = farthest.Add(v)
		if !e.grid.Available(next) {
			return farthest, next
		}
	}
}

// cellOf locates t on the grid.
func (e *Engine) cellOf(t *Tile) Cell {
	var found Cell
	e.grid.EachCell(func(c Cell, cur *Tile) {
		if cur == t {
			found = c
		}
	})
	return found
}
