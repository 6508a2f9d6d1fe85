// Package engine implements the rules of a 2048-style sliding tile puzzle:
// an N×N grid of numbered tiles, the slide/merge/spawn move and the score and
// termination bookkeeping that follows.
//
// The engine is pure game logic. It has no I/O, no timers and no dependency on
// any UI package, and it is not safe for concurrent use.
package engine

import "strings"

// Cell is a grid coordinate. (0, 0) is the top-left corner.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell displaced by v.
func (c Cell) Add(v Vector) Cell {
	return Cell{X: c.X + v.DX, Y: c.Y + v.DY}
}

// Vector is a unit displacement for a move direction.
type Vector struct {
	DX, DY int
}

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction in a fixed order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

var vectors = map[Direction]Vector{
	DirUp:    {DX: 0, DY: -1},
	DirDown:  {DX: 0, DY: 1},
	DirLeft:  {DX: -1, DY: 0},
	DirRight: {DX: 1, DY: 0},
}

// Vector returns the displacement for d.
// The second result is false for an unrecognized direction.
func (d Direction) Vector() (Vector, bool) {
	v, ok := vectors[d]
	return v, ok
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter code used in recorded move lists.
func (d Direction) Letter() byte {
	switch d {
	case DirUp:
		return 'u'
	case DirDown:
		return 'd'
	case DirLeft:
		return 'l'
	case DirRight:
		return 'r'
	default:
		return '?'
	}
}

// ParseDirection converts a name ("left") or letter ("l") into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	}
	return 0, false
}
