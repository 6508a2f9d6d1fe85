package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// NewSeeded creates an engine whose spawns are driven by a seeded
// math/rand generator, so the same seed and moves always give the same game.
func NewSeeded(cfg Config, seed int64) (*Engine, error) {
	return New(cfg, rand.New(rand.NewSource(seed)))
}

// EncodeMoves encodes directions as a compact letter string ("ulrd").
func EncodeMoves(moves []Direction) string {
	var sb strings.Builder
	sb.Grow(len(moves))
	for _, d := range moves {
		sb.WriteByte(d.Letter())
	}
	return sb.String()
}

// DecodeMoves parses a string produced by EncodeMoves.
func DecodeMoves(s string) ([]Direction, error) {
	moves := make([]Direction, 0, len(s))
	for i := range len(s) {
		d, ok := ParseDirection(s[i : i+1])
		if !ok {
			return nil, fmt.Errorf("engine: bad move %q at offset %d", s[i], i)
		}
		moves = append(moves, d)
	}
	return moves, nil
}

// Replay starts a seeded game and applies moves in order.
func Replay(cfg Config, seed int64, moves string) (*Engine, error) {
	dirs, err := DecodeMoves(moves)
	if err != nil {
		return nil, err
	}
	e, err := NewSeeded(cfg, seed)
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		e.Move(d)
	}
	return e, nil
}
