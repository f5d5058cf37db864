package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ufo-race/internal/storage"
)

const maxResults = 100

// ResultsKeyMap defines the key bindings for the match log.
type ResultsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel lists recently finished matches.
type ResultsModel struct {
	store   *storage.Store
	results []storage.MatchResult
	records [2]storage.Record
	err     error
	table   table.Model
	help    help.Model
	keys    ResultsKeyMap
	width   int
	height  int
}

// NewResultsModel creates a match log view backed by store.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	m := ResultsModel{
		store:  store,
		keys:   DefaultResultsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "You", Width: 9},
		{Title: "Result", Width: 7},
		{Title: "Score", Width: 11},
		{Title: "Time", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the latest results and per-role records.
func (m *ResultsModel) load() {
	m.results, m.err = nil, nil
	if m.store == nil {
		m.updateRows()
		return
	}
	m.results, m.err = m.store.RecentResults(maxResults)
	for i, role := range []int{1, 2} {
		rec, err := m.store.RecordFor(role)
		if err != nil && m.err == nil {
			m.err = err
		}
		m.records[i] = rec
	}
	m.updateRows()
}

func (m *ResultsModel) updateRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("Player %d", r.Role),
			outcome,
			fmt.Sprintf("%d : %d", r.LocalScore, r.PeerScore),
			fmt.Sprintf("%ds", r.Duration),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the match log.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the match log.
func (m ResultsModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("UFO RACE - MATCH LOG"), m.width))
	b.WriteString("\n\n")

	var recs []string
	for _, rec := range m.records {
		recs = append(recs, fmt.Sprintf("Player %d: %d played, %d won, %d lost",
			rec.Role, rec.Played, rec.Wins, rec.Losses))
	}
	b.WriteString(centerText(strings.Join(recs, "   "), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read the match log:\n" + m.err.Error())
	case len(m.results) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a race to see it here!")
	}
	return m.table.View()
}

// centerText pads text on the left so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunResults shows the match log until the user quits.
func RunResults(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewResultsModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
