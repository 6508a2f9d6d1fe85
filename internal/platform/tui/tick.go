// Package tui provides the Bubble Tea front end: the variant menu, the game
// loop, the scoreboard and the SSH server that serves them remotely.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// model whose loop scheduled it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickGen hands out a distinct tick generation to every GameModel.
var tickGen atomic.Uint64

func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// defaultTickRate is used when a config leaves TickRate unset.
const defaultTickRate = 60

// tickCmd returns a command that sends one TickMsg for gen after a tick interval.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
