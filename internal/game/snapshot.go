package game

import "github.com/vovakirdan/tui-2048/internal/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWinPending  GameStateType = "win"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	Seed    int64
	Moves   string // Encoded move history
	State   GameStateType
	Board   engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.eng != nil && g.eng.Over():
		state = StateGameOver
	case g.winPending:
		state = StateWinPending
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Seed:    g.seed,
		Moves:   g.Moves(),
		State:   state,
	}
	if g.eng != nil {
		snap.Board = g.eng.Snapshot()
	}
	return snap
}

// Record summarizes a game for storage.
type Record struct {
	Variant string
	Seed    int64
	Moves   string
	Score   int
	MaxTile int
	Won     bool
}

// Record returns the storable summary of the current game.
func (g *Game) Record() Record {
	rec := Record{
		Variant: g.variant.ID,
		Seed:    g.seed,
		Moves:   g.Moves(),
	}
	if g.eng != nil {
		rec.Score = g.eng.Score()
		rec.MaxTile = g.eng.MaxTile()
		rec.Won = g.eng.Won()
	}
	return rec
}

// Replay rebuilds a recorded game by replaying its moves on a fresh engine
// seeded the same way.
func Replay(rec Record) (*engine.Engine, error) {
	cfg, ok := BoardConfig(rec.Variant)
	if !ok {
		return nil, &UnknownVariantError{ID: rec.Variant}
	}
	return engine.Replay(cfg, rec.Seed, rec.Moves)
}

// UnknownVariantError is returned for variant IDs with no preset.
type UnknownVariantError struct {
	ID string
}

func (e *UnknownVariantError) Error() string {
	return "game: unknown variant " + e.ID
}
