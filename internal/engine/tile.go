package engine

// MergePair records the ids of the two tiles consumed by a merge.
// A is the tile that moved, B the tile it landed on.
type MergePair struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Tile is a numbered game piece. A tile is owned by the Grid that holds it;
// callers must not keep a *Tile across a Move or NewGame call.
type Tile struct {
	ID         int
	Value      int
	IsNew      bool
	MergedFrom *MergePair // set only for tiles created by a merge during the last move
}

// TileFactory hands out tile ids. Ids start at 0 and increase by one per
// tile for the lifetime of a game.
type TileFactory struct {
	next int
}

// Create allocates a tile with the next id.
func (f *TileFactory) Create(value int, isNew bool, mergedFrom *MergePair) *Tile {
	t := &Tile{
		ID:         f.next,
		Value:      value,
		IsNew:      isNew,
		MergedFrom: mergedFrom,
	}
	f.next++
	return t
}

// Next returns the id the next tile will receive.
func (f *TileFactory) Next() int {
	return f.next
}

// Reset restarts id allocation at 0. Only a new game may call this.
func (f *TileFactory) Reset() {
	f.next = 0
}
