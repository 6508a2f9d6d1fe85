// Package game adapts the board engine to the platform's Game interface:
// variant presets, input mapping, the win/keep-playing flow, slide
// animations and rendering into a core.Screen.
package game

import (
	"sync"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// ClassicID is the variant whose board comes from the configuration file.
const ClassicID = "2048"

// Variant is a board preset.
type Variant struct {
	ID          string
	Title       string
	Description string
	Board       engine.Config
}

// Variants lists the built-in presets. The classic entry holds the defaults;
// SetClassicConfig replaces its board at startup.
var Variants = []Variant{
	{
		ID:          ClassicID,
		Title:       "2048",
		Description: "Classic 4x4, reach 2048",
		Board:       engine.DefaultConfig(),
	},
	{
		ID:          "2048_mini",
		Title:       "2048 Mini",
		Description: "3x3 board, reach 256",
		Board:       engine.Config{Size: 3, WinValue: 256, Spawn4Prob: 0.10, StartTiles: 2},
	},
	{
		ID:          "2048_big",
		Title:       "2048 Big",
		Description: "5x5 board, reach 4096",
		Board:       engine.Config{Size: 5, WinValue: 4096, Spawn4Prob: 0.10, StartTiles: 2},
	},
	{
		ID:          "2048_huge",
		Title:       "2048 Huge",
		Description: "6x6 board, reach 8192",
		Board:       engine.Config{Size: 6, WinValue: 8192, Spawn4Prob: 0.15, StartTiles: 3},
	},
	{
		ID:          "2048_endless",
		Title:       "2048 Endless",
		Description: "4x4 board, no win tile",
		Board:       engine.Config{Size: 4, WinValue: 0, Spawn4Prob: 0.10, StartTiles: 2},
	},
}

var (
	classicMu     sync.RWMutex
	classicConfig = engine.DefaultConfig()
)

// SetClassicConfig sets the board used by the classic variant.
// Invalid configs are rejected and the previous board is kept.
func SetClassicConfig(cfg engine.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	classicMu.Lock()
	classicConfig = cfg
	classicMu.Unlock()
	return nil
}

// VariantByID returns the preset with the given ID, with the classic
// board reflecting SetClassicConfig.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID != id {
			continue
		}
		if v.ID == ClassicID {
			classicMu.RLock()
			v.Board = classicConfig
			classicMu.RUnlock()
		}
		return v, true
	}
	return Variant{}, false
}

// BoardConfig returns the engine config for a variant ID.
func BoardConfig(id string) (engine.Config, bool) {
	v, ok := VariantByID(id)
	if !ok {
		return engine.Config{}, false
	}
	return v.Board, true
}

func init() {
	for _, v := range Variants {
		id := v.ID
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
