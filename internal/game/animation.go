package game

import (
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation is one tile moving or appearing on the board.
type TileAnimation struct {
	ID       int
	Value    int     // Value drawn while animating
	From     engine.Cell
	To       engine.Cell
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Consumed by a merge at To
	IsNew    bool    // Spawned tile (pop effect)
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// tilePositions maps each placed tile id to its cell, skipping merge ghosts.
func tilePositions(tiles []engine.RenderTile) map[int]engine.Cell {
	pos := make(map[int]engine.Cell, len(tiles))
	for _, t := range tiles {
		if t.Ghost {
			continue
		}
		pos[t.ID] = t.Cell
	}
	return pos
}

// startSlideAnimation builds slides from the cells tiles held before the move
// to where the render list puts them now. Merge ghosts slide into the merge
// cell; the merged tile itself only shows once the slide is over. The spawned
// tile pops in afterwards.
func (g *Game) startSlideAnimation(before map[int]engine.Cell, after []engine.RenderTile, res engine.MoveResult) {
	g.animations = nil
	g.pendingPop = nil

	for _, t := range after {
		if res.Spawned != nil && t.ID == res.Spawned.ID {
			g.pendingPop = &TileAnimation{
				ID:    t.ID,
				Value: t.Value,
				From:  t.Cell,
				To:    t.Cell,
				IsNew: true,
			}
			continue
		}
		if t.Merged {
			continue
		}

		from, ok := before[t.ID]
		if !ok {
			from = t.Cell
		}
		g.animations = append(g.animations, TileAnimation{
			ID:     t.ID,
			Value:  t.Value,
			From:   from,
			To:     t.Cell,
			Merged: t.Ghost,
		})
	}

	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

// startPopAnimation plays the appearance of a spawned tile.
func (g *Game) startPopAnimation(pop TileAnimation) {
	pop.Progress = 0
	g.animations = []TileAnimation{pop}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		g.stopAnimation()
		return false
	}

	progress := float64(g.animationTicks) / float64(duration)
	if progress > 1.0 {
		progress = 1.0
	}
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return false
	}

	return true
}

// finishAnimation completes the current phase, chaining slide into pop.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide && g.pendingPop != nil {
		pop := *g.pendingPop
		g.pendingPop = nil
		g.startPopAnimation(pop)
		return
	}
	g.stopAnimation()
}

// stopAnimation drops any animation in progress.
func (g *Game) stopAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animationTicks = 0
	g.animations = nil
	g.pendingPop = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position returns the interpolated board position in cell units.
func (a *TileAnimation) position() (x, y float64) {
	t := easeOutQuad(core.ClampF(a.Progress, 0, 1))
	x = float64(a.From.X) + float64(a.To.X-a.From.X)*t
	y = float64(a.From.Y) + float64(a.To.Y-a.From.Y)*t
	return x, y
}
