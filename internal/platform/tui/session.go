package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/logging"
	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> game -> menu, with
// the scoreboard one Tab away. It is the top-level model for SSH sessions
// and the local menu command.
//
// Games are created once per selected ID and kept for the whole session,
// so the in-game high score survives going back to the menu.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	view      sessionView
	menu      MenuModel
	scores    ScoreboardModel
	games     map[string]registry.Game
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = logging.Discard()
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logger,
		menu:     NewMenuModel(store, cfg),
		games:    make(map[string]registry.Game),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		game, ok := m.games[id]
		if !ok {
			var err error
			game, err = registry.Create(id)
			if err != nil {
				// Shouldn't happen since menu only shows registered games
				m.logger.Error("cannot create game", "game", id, "error", err)
				m.menu = NewMenuModel(m.store, m.config)
				return m, nil
			}
			m.games[id] = game
		}

		gameModel := NewGameModel(game, m.config, GameOptions{
			Store:     m.store,
			Logger:    m.logger,
			Player:    m.username,
			InSession: true,
		})
		m.gameModel = &gameModel
		m.view = viewGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		// The scoreboard asks its own program to quit, swallow that here
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is on screen.
func (m SessionModel) InGame() bool {
	return m.view == viewGame
}

// Game returns the session's instance of the given game, if it was played.
func (m SessionModel) Game(id string) (registry.Game, bool) {
	g, ok := m.games[id]
	return g, ok
}

// RunSession runs the menu/game/scoreboard flow in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, player, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
