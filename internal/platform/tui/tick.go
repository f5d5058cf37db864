// Package tui provides the Bubble Tea client for UFO Race.
// It drives the arena session from a fixed tick, maps keys to actions,
// renders both universes and hosts clients over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ufo-race/internal/peer"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// LinkDownMsg reports that the peer link has terminated.
type LinkDownMsg struct {
	Err error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitLinkDown blocks until the link terminates.
func waitLinkDown(link *peer.Link) tea.Cmd {
	return func() tea.Msg {
		<-link.Done()
		return LinkDownMsg{Err: link.Err()}
	}
}
