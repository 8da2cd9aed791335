package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-catcher/internal/core"
	"github.com/vovakirdan/star-catcher/internal/logging"
	"github.com/vovakirdan/star-catcher/internal/registry"
	"github.com/vovakirdan/star-catcher/internal/storage"
)

// pngSaver is implemented by games that can export a full-resolution frame.
type pngSaver interface {
	SavePNG(path string) error
}

// GameOptions carries the collaborators of a GameModel.
type GameOptions struct {
	Store  *storage.Store // Optional round history
	Logger *log.Logger    // Optional, discarded when nil
	Player string         // Recorded with every finished round

	// ScreenshotDir receives ctrl+s screenshots. Defaults to ~/.arcade/screenshots.
	ScreenshotDir string

	// InSession allows going back to the menu instead of quitting.
	InSession bool
}

// GameModel runs one game: it applies input immediately, steps the game on
// its own tick cadence and renders it.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      GameOptions
	logger    *log.Logger
	keyMapper *KeyMapper
	help      help.Model
	loop      uint64 // Only ticks of this loop are handled

	state      core.GameState
	ticking    bool // A TickMsg is pending
	ticks      int  // Ticks in the current round
	scoreSaved bool // Whether the current round has been recorded
	lastShot   string

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, fieldRows(cfg.ScreenH)),
		config:    cfg,
		opts:      opts,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		help:      h,
		loop:      nextLoop(),
		ticking:   true,
	}
}

// fieldRows returns the rows left to the game above the help footer.
func fieldRows(height int) int {
	return max(height-1, 1)
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("round started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.loop, m.game.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if frame, ok := m.keyMapper.MapMouse(msg); ok {
			return m.apply(frame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, fieldRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			// Left over from a previous game
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = m.opts.InSession
		return m, nil
	case action == core.ActionNone:
		return m, nil
	}

	return m.apply(core.FrameOf(action))
}

// apply hands a frame to the game and restarts the tick loop when the
// frame started a new round.
func (m GameModel) apply(frame core.InputFrame) (tea.Model, tea.Cmd) {
	wasOver := m.state.GameOver
	m.state = m.game.Input(frame)

	if wasOver && !m.state.GameOver {
		m.ticks = 0
		m.scoreSaved = false
		m.logger.Debug("round restarted", "game", m.game.ID(), "high", m.state.HighScore)
		if !m.ticking {
			m.ticking = true
			return m, tickCmd(m.loop, m.game.TickInterval())
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step()
	m.state = result.State
	m.ticks++

	if result.State.GameOver {
		m.recordRound()
	}

	if !result.Reschedule {
		m.ticking = false
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.loop, m.game.TickInterval())
}

// recordRound logs the finished round and saves it once.
func (m *GameModel) recordRound() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	m.logger.Info("round over",
		"game", m.game.ID(),
		"player", m.opts.Player,
		"score", m.state.Score,
		"high", m.state.HighScore,
		"ticks", m.ticks,
	)

	if m.opts.Store == nil || m.state.Score <= 0 {
		return
	}
	_, err := m.opts.Store.SaveRound(storage.Round{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.state.Score,
		Ticks:  m.ticks,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save round", "error", err)
	}
}

func (m GameModel) screenshotDir() string {
	if m.opts.ScreenshotDir != "" {
		return m.opts.ScreenshotDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".arcade", "screenshots")
}

// saveScreenshot saves the current screen as text and, when the game
// supports it, the full field as PNG.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.screenshotDir()
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405")))

	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.lastShot = base + ".txt"

	if g, ok := m.game.(pngSaver); ok {
		if err := g.SavePNG(base + ".png"); err != nil {
			m.logger.Warn("could not save png", "error", err)
			return
		}
		m.lastShot = base + ".png"
	}
	m.logger.Info("screenshot saved", "path", m.lastShot)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	footer := lipgloss.PlaceHorizontal(m.screen.Width(), lipgloss.Center, m.help.View(m.footer()))
	return RenderScreen(m.screen) + "\n" + footer
}

func (m GameModel) footer() footerKeys {
	return footerKeys{
		keys:      m.keyMapper.Keys(),
		gameOver:  m.state.GameOver,
		inSession: m.opts.InSession,
	}
}

// State returns the last known game state.
func (m GameModel) State() core.GameState {
	return m.state
}

// Ticking reports whether the tick loop is active.
func (m GameModel) Ticking() bool {
	return m.ticking
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks reach the restart button
	)

	_, err := p.Run()
	return err
}
