package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/core"
	"github.com/vovakirdan/ufo-race/internal/peer"
	"github.com/vovakirdan/ufo-race/internal/storage"
)

// Options configures a client model.
type Options struct {
	Session *arena.Session
	Link    *peer.Link     // Nil runs the session offline
	Store   *storage.Store // Nil disables the match log
	Logger  *log.Logger
	Width   int
	Height  int
}

// Model is the Bubble Tea model for one player's client.
type Model struct {
	session    *arena.Session
	link       *peer.Link
	store      *storage.Store
	logger     *log.Logger
	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	tickRate   int

	// Terminals only report key presses, so a held key is modeled as
	// thrust that lasts holdTicks after the last repeat.
	thrust    int
	holdLeft  int
	holdTicks int

	matchID    string
	startedAt  time.Time
	linkDown   bool
	resultSent bool
	quitting   bool
}

// NewModel creates a client model.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tickRate := opts.Session.Config().Field.TickRate

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	return Model{
		session:    opts.Session,
		link:       opts.Link,
		store:      opts.Store,
		logger:     logger,
		screen:     core.NewScreen(opts.Width, max(1, opts.Height-1)),
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		tickRate:   tickRate,
		holdTicks:  max(1, tickRate/4),
		matchID:    uuid.NewString(),
		startedAt:  time.Now(),
		linkDown:   opts.Link == nil,
	}
}

// Init starts the tick loop and watches the link.
func (m Model) Init() tea.Cmd {
	if m.link == nil {
		return tickCmd(m.tickRate)
	}
	return tea.Batch(tickCmd(m.tickRate), waitLinkDown(m.link))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case LinkDownMsg:
		m.linkDown = true
		m.logger.Warn("peer link down, opponent frozen", "error", msg.Err)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		if m.link != nil {
			m.link.Close()
		}
		return m, tea.Quit
	case core.ActionFireLeft:
		m.session.Fire(-1)
	case core.ActionFireRight:
		m.session.Fire(1)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick applies the peer snapshot and buffered input, then steps the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.link != nil {
		if u, ok := m.link.Inbox().Take(); ok {
			m.session.ApplyPeer(u)
		}
	}

	if m.inputFrame.Has(core.ActionReset) {
		m.session.Reset()
		m.matchID = uuid.NewString()
		m.startedAt = time.Now()
		m.resultSent = false
		m.logger.Info("session reset", "match", m.matchID)
	}
	if m.inputFrame.Has(core.ActionPause) {
		m.session.TogglePause()
	}

	if dir := m.inputFrame.Thrust(); dir != 0 {
		m.thrust, m.holdLeft = dir, m.holdTicks
	}
	if m.holdLeft > 0 {
		m.holdLeft--
		m.session.SetThrust(m.thrust)
	} else {
		m.session.SetThrust(0)
	}

	st := m.session.Step()

	if m.link != nil {
		m.link.Publish(m.session.LocalState())
	}
	if st.GameOver && !m.resultSent {
		m.saveResult(st)
		m.resultSent = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickRate)
}

// saveResult appends the finished match to the local log.
func (m *Model) saveResult(st arena.State) {
	local := m.session.Role()
	m.logger.Info("match over", "match", m.matchID, "winner", int(st.Winner), "ticks", st.Tick)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveMatchResult(storage.MatchResult{
		MatchID:    m.matchID,
		Role:       int(local),
		Winner:     int(st.Winner),
		LocalScore: m.session.Ship(local).Score,
		PeerScore:  m.session.Ship(local.Opponent()).Score,
		Ticks:      st.Tick,
		Duration:   int(time.Since(m.startedAt).Seconds()),
	})
	if err != nil {
		m.logger.Error("could not save match result", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	DrawArena(m.screen, m.session, ArenaStatus{LinkDown: m.linkDown, Offline: m.link == nil})
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
