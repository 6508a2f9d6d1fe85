package game

import (
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Game runs one board variant on top of the engine.
type Game struct {
	variant Variant
	eng     *engine.Engine
	seed    int64
	tick    uint64
	history []engine.Direction
	best    int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused     bool
	tooSmall   bool
	winPending bool // win overlay shown, waiting for Enter
	continued  bool // player chose to keep playing after the win

	// Animation state
	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	animations     []TileAnimation
	pendingPop     *TileAnimation
}

// New creates a game for the given variant ID.
// Unknown IDs fall back to the classic variant.
func New(id string) *Game {
	v, ok := VariantByID(id)
	if !ok {
		v, _ = VariantByID(ClassicID)
	}
	return &Game{variant: v}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns the variant summary.
func (g *Game) Description() string {
	return g.variant.Description
}

// Variant returns the preset this game plays.
func (g *Game) Variant() Variant {
	return g.variant
}

// SetBestScore seeds the best score, typically from storage.
func (g *Game) SetBestScore(best int) {
	if best > g.best {
		g.best = best
	}
	if g.eng != nil {
		g.eng.SetBestScore(g.best)
	}
}

// Reset starts a new seeded game. The best score carries over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.eng != nil && g.eng.Score() > g.best {
		g.best = g.eng.Score()
	}

	// Built-in boards are valid and SetClassicConfig rejects bad ones.
	eng, err := engine.NewSeeded(g.variant.Board, cfg.Seed)
	if err != nil {
		eng, _ = engine.NewSeeded(engine.DefaultConfig(), cfg.Seed)
	}
	eng.SetBestScore(g.best)

	g.eng = eng
	g.seed = cfg.Seed
	g.tick = 0
	g.history = nil
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.winPending = false
	g.continued = false
	g.stopAnimation()

	g.checkScreenSize()
}

// Resize adapts to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := g.boardDims()
	minW := boardW + 2
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.eng == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.eng.Over() && !g.winPending {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Moves are ignored until the previous one has finished animating
	if g.updateAnimation() {
		return core.StepResult{State: g.State()}
	}

	if g.winPending {
		if in.Has(core.ActionConfirm) {
			g.winPending = false
			g.continued = true
		}
		return core.StepResult{State: g.State()}
	}

	if g.eng.Over() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.applyMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFor picks the slide direction pressed this tick, if any.
func directionFor(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// applyMove runs one engine move and starts its animation.
func (g *Game) applyMove(dir engine.Direction) bool {
	before := tilePositions(g.eng.Tiles())
	res := g.eng.Move(dir)
	if !res.Moved {
		return false
	}

	g.history = append(g.history, dir)
	g.startSlideAnimation(before, g.eng.Tiles(), res)

	if g.eng.Won() && !g.continued {
		g.winPending = true
	}
	return true
}

// Moves returns the directions applied this game, encoded as letters.
func (g *Game) Moves() string {
	return engine.EncodeMoves(g.history)
}

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 {
	return g.seed
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{BestScore: g.best}
	}
	s := g.eng.Session()
	best := s.BestScore
	if s.Score > best {
		best = s.Score
	}
	return core.GameState{
		Score:     s.Score,
		BestScore: best,
		GameOver:  s.Over,
		Won:       s.Won,
		Paused:    g.paused || g.tooSmall || g.winPending,
	}
}
