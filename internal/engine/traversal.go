package engine

// Traversal is the order in which a move visits columns (X) and rows (Y).
type Traversal struct {
	X []int
	Y []int
}

// BuildTraversal returns the visiting order for a move along v.
// An axis is walked backwards when the move points toward its far edge, so
// the tile nearest the destination edge is always resolved first.
func BuildTraversal(v Vector, size int) Traversal {
	t := Traversal{
		X: make([]int, size),
		Y: make([]int, size),
	}
	for pos := range size {
		t.X[pos] = pos
		t.Y[pos] = pos
	}
	if v.DX == 1 {
		reverse(t.X)
	}
	if v.DY == 1 {
		reverse(t.Y)
	}
	return t
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
