package engine

// MovesAvailable reports whether any move could change the board: an empty
// cell exists, or two orthogonal neighbours hold equal values.
func (e *Engine) MovesAvailable() bool {
	return len(e.grid.AvailableCells()) > 0 || e.tileMatchesAvailable()
}

// tileMatchesAvailable reports whether some tile has an equal-valued neighbour.
func (e *Engine) tileMatchesAvailable() bool {
	for y := range e.cfg.Size {
		for x := range e.cfg.Size {
			cell := Cell{X: x, Y: y}
			tile := e.grid.CellAt(cell)
			if tile == nil {
				continue
			}
			for _, dir := range Directions {
				v, _ := dir.Vector()
				if other := e.grid.CellAt(cell.Add(v)); other != nil && other.Value == tile.Value {
					return true
				}
			}
		}
	}
	return false
}
