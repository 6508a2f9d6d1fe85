package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config holds the parameters fixed for the lifetime of an Engine.
type Config struct {
	Size       int     // Grid dimension N
	WinValue   int     // Tile value that wins the game; 0 disables winning
	Spawn4Prob float64 // Probability that a spawned tile is a 4 instead of a 2
	StartTiles int     // Tiles placed by NewGame
}

// DefaultConfig returns the classic 4×4 game.
func DefaultConfig() Config {
	return Config{
		Size:       4,
		WinValue:   2048,
		Spawn4Prob: 0.10,
		StartTiles: 2,
	}
}

// Validate checks the config for values the engine cannot play with.
func (c Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("engine: size %d must be at least 2: %w", c.Size, ErrInvalidConfig)
	}
	if c.WinValue != 0 && (c.WinValue < 4 || c.WinValue&(c.WinValue-1) != 0) {
		return fmt.Errorf("engine: win value %d must be 0 or a power of two >= 4: %w", c.WinValue, ErrInvalidConfig)
	}
	if c.Spawn4Prob < 0 || c.Spawn4Prob > 1 {
		return fmt.Errorf("engine: spawn4 probability %v outside [0, 1]: %w", c.Spawn4Prob, ErrInvalidConfig)
	}
	if c.StartTiles < 0 || c.StartTiles > c.Size*c.Size {
		return fmt.Errorf("engine: start tiles %d outside [0, %d]: %w", c.StartTiles, c.Size*c.Size, ErrInvalidConfig)
	}
	return nil
}

// Source is the random source used for tile spawning. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Session is the score and termination state of the current game.
type Session struct {
	Score     int  `json:"score"`
	BestScore int  `json:"best_score"`
	Over      bool `json:"over"`
	Won       bool `json:"won"`
}

// Engine is the board engine: grid, tile ids, session state and the move rules.
type Engine struct {
	cfg     Config
	rng     Source
	grid    *Grid
	tiles   TileFactory
	session Session
	moves   int
	busy    bool
}

// New creates an engine and starts the first game.
// A nil src uses a time-seeded generator.
func New(cfg Config, src Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		cfg:  cfg,
		rng:  src,
		grid: NewGrid(cfg.Size),
	}
	e.seed()
	return e, nil
}

// NewGame clears the board and starts over. BestScore is kept; callers that
// track a best score should raise it with SetBestScore before calling NewGame.
func (e *Engine) NewGame() {
	if e.busy {
		return
	}
	e.busy = true
	defer func() { e.busy = false }()

	e.session = Session{BestScore: e.session.BestScore}
	e.moves = 0
	e.grid.Clear()
	e.tiles.Reset()
	e.seed()
}

// seed places the configured number of starting tiles.
func (e *Engine) seed() {
	for range e.cfg.StartTiles {
		e.spawnTile()
	}
}

// spawnTile places a 2 or a 4 on a random empty cell.
// Returns nil when the grid is full.
func (e *Engine) spawnTile() *Tile {
	cells := e.grid.AvailableCells()
	if len(cells) == 0 {
		return nil
	}

	cell := cells[e.rng.Intn(len(cells))]

	value := 2
	if e.rng.Float64() < e.cfg.Spawn4Prob {
		value = 4
	}

	t := e.tiles.Create(value, true, nil)
	e.grid.Place(t, cell)
	return t
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Size returns the grid dimension.
func (e *Engine) Size() int {
	return e.cfg.Size
}

// Session returns a copy of the session state.
func (e *Engine) Session() Session {
	return e.session
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.session.Score
}

// Over reports whether the last move left no moves available.
func (e *Engine) Over() bool {
	return e.session.Over
}

// Won reports whether the win value has been reached in this game.
func (e *Engine) Won() bool {
	return e.session.Won
}

// MoveCount returns the number of moves that changed the board this game.
func (e *Engine) MoveCount() int {
	return e.moves
}

// SetBestScore replaces the best score. Persistence belongs to the caller.
func (e *Engine) SetBestScore(best int) {
	if best < 0 {
		best = 0
	}
	e.session.BestScore = best
}

// CellAt returns a copy of the tile at c.
// The second result is false when c is empty or off the grid.
func (e *Engine) CellAt(c Cell) (Tile, bool) {
	t := e.grid.CellAt(c)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Values returns the tile values as a [y][x] matrix with 0 for empty cells.
func (e *Engine) Values() [][]int {
	values := make([][]int, e.cfg.Size)
	for y := range values {
		values[y] = make([]int, e.cfg.Size)
	}
	e.grid.EachCell(func(c Cell, t *Tile) {
		if t != nil {
			values[c.Y][c.X] = t.Value
		}
	})
	return values
}

// MaxTile returns the highest tile value on the board.
func (e *Engine) MaxTile() int {
	maxVal := 0
	e.grid.EachCell(func(_ Cell, t *Tile) {
		if t != nil && t.Value > maxVal {
			maxVal = t.Value
		}
	})
	return maxVal
}

// RenderTile is a tile as the UI sees it: value, position and animation hints.
type RenderTile struct {
	ID     int  `json:"id"`
	Value  int  `json:"value"`
	Cell   Cell `json:"cell"`
	IsNew  bool `json:"is_new,omitempty"`
	Merged bool `json:"merged,omitempty"` // created by a merge in the last move
	Ghost  bool `json:"ghost,omitempty"`  // consumed by a merge in the last move
}

// Tiles returns every placed tile plus, for each merge of the last move, the
// two consumed tiles drawn at the merge cell. The list is sorted by id.
func (e *Engine) Tiles() []RenderTile {
	var result []RenderTile
	e.grid.EachCell(func(c Cell, t *Tile) {
		if t == nil {
			return
		}
		if t.MergedFrom != nil {
			half := t.Value / 2
			result = append(result,
				RenderTile{ID: t.MergedFrom.A, Value: half, Cell: c, Ghost: true},
				RenderTile{ID: t.MergedFrom.B, Value: half, Cell: c, Ghost: true},
			)
		}
		result = append(result, RenderTile{
			ID:     t.ID,
			Value:  t.Value,
			Cell:   c,
			IsNew:  t.IsNew,
			Merged: t.MergedFrom != nil,
		})
	})

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Snapshot is a self-contained view of the engine for serialization.
type Snapshot struct {
	Size     int          `json:"size"`
	WinValue int          `json:"win_value"`
	Session  Session      `json:"session"`
	Moves    int          `json:"moves"`
	MaxTile  int          `json:"max_tile"`
	Board    [][]int      `json:"board"`
	Tiles    []RenderTile `json:"tiles"`
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:     e.cfg.Size,
		WinValue: e.cfg.WinValue,
		Session:  e.session,
		Moves:    e.moves,
		MaxTile:  e.MaxTile(),
		Board:    e.Values(),
		Tiles:    e.Tiles(),
	}
}
