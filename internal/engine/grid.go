package engine

// Grid is the N×N matrix of cells. Each cell holds at most one tile and each
// tile sits in exactly one cell.
type Grid struct {
	size  int
	cells [][]*Tile // indexed [y][x]
}

// NewGrid creates an empty grid.
func NewGrid(size int) *Grid {
	g := &Grid{size: size}
	g.cells = make([][]*Tile, size)
	for y := range g.cells {
		g.cells[y] = make([]*Tile, size)
	}
	return g
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

// WithinBounds reports whether c lies on the grid.
func (g *Grid) WithinBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// CellAt returns the tile at c, or nil when c is empty or off the grid.
func (g *Grid) CellAt(c Cell) *Tile {
	if !g.WithinBounds(c) {
		return nil
	}
	return g.cells[c.Y][c.X]
}

// Occupied reports whether a tile sits at c.
func (g *Grid) Occupied(c Cell) bool {
	return g.CellAt(c) != nil
}

// Available reports whether c is on the grid and empty.
func (g *Grid) Available(c Cell) bool {
	return g.WithinBounds(c) && !g.Occupied(c)
}

// AvailableCells returns every empty cell in row-major order.
func (g *Grid) AvailableCells() []Cell {
	var cells []Cell
	for y := range g.size {
		for x := range g.size {
			if g.cells[y][x] == nil {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Place puts t at c, replacing whatever was there.
func (g *Grid) Place(t *Tile, c Cell) {
	if !g.WithinBounds(c) {
		return
	}
	g.cells[c.Y][c.X] = t
}

// Remove empties c.
func (g *Grid) Remove(c Cell) {
	if !g.WithinBounds(c) {
		return
	}
	g.cells[c.Y][c.X] = nil
}

// MoveTile moves t from one cell to another.
func (g *Grid) MoveTile(t *Tile, from, to Cell) {
	g.Remove(from)
	g.Place(t, to)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = nil
		}
	}
}

// EachCell calls fn for every cell in row-major order. t is nil for empty cells.
func (g *Grid) EachCell(fn func(c Cell, t *Tile)) {
	for y := range g.size {
		for x := range g.size {
			fn(Cell{X: x, Y: y}, g.cells[y][x])
		}
	}
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	g.EachCell(func(_ Cell, t *Tile) {
		if t != nil {
			n++
		}
	})
	return n
}
