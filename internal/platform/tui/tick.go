// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, run recording and the
// menu, run browser and SSH session flows around a game.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// model that started the tick loop so stale ticks from a model that was
// left are dropped.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick loop identity.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
