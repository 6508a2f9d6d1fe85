package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Optional capabilities of a registry.Game used by the game loop.
type (
	bestScoreSetter interface{ SetBestScore(best int) }
	recorder        interface{ Record() game.Record }
	resizer         interface{ Resize(w, h int) }
)

// GameModel is the Bubble Tea model that runs one variant: it feeds key
// presses into input frames, steps the game on every tick, and saves the
// score and the move record when a game ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Own tea.Program: leaving the game quits it
	quitting   bool
	backToMenu bool
	recorded   bool   // Score and record saved for the current game
	gen        uint64 // Tick generation; ticks from older models are dropped
}

// NewGameModel creates a game model. A standalone model quits its program
// when the player leaves; an embedded one only raises BackToMenu.
func NewGameModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, standalone bool) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		standalone: standalone,
		gen:        nextTickGen(),
	}
}

// Init seeds the best score from storage, starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	if s, ok := m.game.(bestScoreSetter); ok && m.store != nil {
		if high, err := m.store.HighScore(m.game.ID()); err == nil {
			s.SetBestScore(high)
		}
	}
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if r, ok := m.game.(resizer); ok {
			r.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRecord()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		m.saveRecord()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.saveRecord()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRecord()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveRecord stores the score and the replayable move record once per game.
// Games that never scored are not recorded.
func (m *GameModel) saveRecord() {
	if m.recorded || m.store == nil {
		return
	}
	state := m.game.State()
	if state.Score <= 0 {
		return
	}
	m.recorded = true

	maxTile := 0
	if r, ok := m.game.(recorder); ok {
		rec := r.Record()
		maxTile = rec.MaxTile
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveGame(storage.GameRecord{
			Variant: rec.Variant,
			Seed:    rec.Seed,
			Moves:   rec.Moves,
			Score:   rec.Score,
			MaxTile: rec.MaxTile,
			Won:     rec.Won,
		})
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), state.Score, maxTile)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last stepped game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays one variant in its own Bubble Tea program.
// Returns true if the player asked to go back to the menu.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(g, store, cfg, true)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
