package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

const maxBoardRows = 100

// boardMode selects which rounds the scoreboard lists.
type boardMode int

const (
	boardBest boardMode = iota
	boardRecent
)

func (m boardMode) String() string {
	if m == boardRecent {
		return "Recent"
	}
	return "Best"
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Mode     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Mode, k.NextGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Mode, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best/recent"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists recorded rounds, best first or latest first, with
// the aggregate stats of the selected game.
type ScoreboardModel struct {
	games     []registry.GameInfo
	game      int
	mode      boardMode
	store     *storage.Store
	entries   []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game].ID
}

// newTable sizes the columns to the terminal. Player takes what is left.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "When", Width: 13},
	}
	fixed := 0
	for _, c := range columns {
		fixed += c.Width + 2 // Cell padding
	}
	if spare := m.width - 6 - fixed; spare > 0 {
		columns[1].Width += min(spare, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, stats, tabs, help
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

// reload fetches the rounds and stats of the selected game.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats, m.loadErr = nil, nil, nil

	id := m.gameID()
	if m.store != nil && id != "" {
		if m.mode == boardRecent {
			m.entries, m.loadErr = m.store.RecentRounds(id, maxBoardRows)
		} else {
			m.entries, m.loadErr = m.store.TopScores(id, maxBoardRows)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			player,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Ticks),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Mode):
			m.mode = 1 - m.mode
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.PrevGame):
			if n := len(m.games); n > 1 {
				step := 1
				if key.Matches(msg, m.keys.PrevGame) {
					step = n - 1
				}
				m.game = (m.game + step) % n
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if id := m.gameID(); id != "" {
		title += " - " + registry.Title(id)
	}
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 2)
	for _, mode := range []boardMode{boardBest, boardRecent} {
		if mode == m.mode {
			tabs = append(tabs, boardActiveTab.Render(mode.String()))
		} else {
			tabs = append(tabs, boardTabStyle.Render(mode.String()))
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")

	b.WriteString(boardFrameStyle.Render(m.body()))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	switch {
	case m.store == nil:
		return "round history is off, start with --db to record rounds"
	case m.stats == nil || m.stats.GamesCount == 0:
		return "no rounds yet"
	}
	line := fmt.Sprintf("%d rounds · best %d · average %.1f", m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore)
	if !m.stats.LastPlayed.IsZero() {
		line += " · last " + m.stats.LastPlayed.Local().Format("Jan 02 15:04")
	}
	return line
}

func (m ScoreboardModel) body() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	switch {
	case m.loadErr != nil:
		return empty.Render("Could not load rounds:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return empty.Render("No rounds recorded yet.\nCatch a few stars to set a high score!")
	}
	return m.table.View()
}

// Mode returns "Best" or "Recent".
func (m ScoreboardModel) Mode() string {
	return m.mode.String()
}

// Rows returns the number of listed rounds.
func (m ScoreboardModel) Rows() int {
	return len(m.entries)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
// Returns true if user wants to go back, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
