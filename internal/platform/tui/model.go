package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle/engine"
	"github.com/vovakirdan/space-battle/internal/registry"
	"github.com/vovakirdan/space-battle/internal/storage"
)

// footerRows is the number of terminal rows below the game screen.
const footerRows = 1

// SoundPlayer plays named sound cues.
type SoundPlayer interface {
	Play(cue string) bool
	ToggleMute() bool
}

// statsSource is implemented by games that report run counters.
type statsSource interface {
	Stats() engine.Stats
}

// configSource is implemented by games whose rules come from a config
// that must be stored with a replay.
type configSource interface {
	ConfigYAML() ([]byte, error)
}

// Options carries the optional collaborators of a Model. Nil fields are
// skipped.
type Options struct {
	Store  *storage.Store
	Audio  SoundPlayer
	Logger *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model

	recorder *storage.Recorder
	steps    int  // Step calls in the current run
	saved    bool // Whether the current run is in the journal

	dragging     bool
	lastX, lastY int

	quitting bool
}

// NewModel creates a Bubble Tea model for the given game and resets it.
// cfg holds the full terminal size; one row is kept for the help footer.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = core.Max(cfg.ScreenH-footerRows, 1)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       h,
	}
	m.startRun()
	return m
}

// startRun resets the game and begins a new recording.
func (m *Model) startRun() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorder = storage.NewRecorder(m.game.ID(), m.config)
	m.steps = 0
	m.saved = false
	m.logger.Debug("run started", "seed", m.config.Seed, "width", m.config.ScreenW, "height", m.config.ScreenH)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns a left click into a tap and a left-button drag into
// drag deltas.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.inputFrame.AddTap(msg.X, msg.Y)
		m.dragging = true
		m.lastX, m.lastY = msg.X, msg.Y

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		m.inputFrame.AddDrag(msg.X-m.lastX, msg.Y-m.lastY)
		m.lastX, m.lastY = msg.X, msg.Y

	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

// handleResize restarts the run at the new size. The terminal reports its
// size once at startup, which is ignored when nothing changed.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width
	w, h := msg.Width, core.Max(msg.Height-footerRows, 1)
	if w == m.config.ScreenW && h == m.config.ScreenH {
		return m, nil
	}

	m.saveReplay()
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)
	m.logger.Info("terminal resized, restarting", "width", w, "height", h)
	m.startRun()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.saveReplay()
		m.config.Seed = time.Now().UnixNano()
		m.startRun()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.inputFrame.Has(core.ActionMute) && m.opts.Audio != nil {
		muted := m.opts.Audio.ToggleMute()
		m.logger.Info("sound toggled", "muted", muted)
	}

	m.recorder.Record(m.steps, m.inputFrame)
	m.steps++

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.opts.Audio != nil {
		for _, cue := range result.Sounds {
			m.opts.Audio.Play(cue)
		}
	}

	if prev.Phase != m.gameState.Phase {
		m.logger.Info("phase changed", "from", prev.Phase, "to", m.gameState.Phase, "score", m.gameState.Score)
	}
	if m.gameState.GameOver && !prev.GameOver {
		m.logger.Info("game over", "score", m.gameState.Score, "steps", m.steps)
		m.saveReplay()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveReplay stores the current run in the journal once. Runs that never
// left the title screen are not stored.
func (m *Model) saveReplay() {
	if m.saved || m.gameState.Phase == engine.PhaseBeforeGame.String() {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	header := m.recorder.Header()
	header.Ticks = m.steps
	header.Score = m.gameState.Score
	header.FinalPhase = m.gameState.Phase
	if src, ok := m.game.(statsSource); ok {
		st := src.Stats()
		header.Kills = st.Kills
		header.Breaches = st.Breaches
		header.Hearts = st.Hearts
		header.LivesLost = st.LivesLost
	}

	if src, ok := m.game.(configSource); ok {
		data, err := src.ConfigYAML()
		if err != nil {
			m.logger.Warn("replay saved without config", "error", err)
		}
		header.ConfigYAML = string(data)
	}

	id, err := m.opts.Store.SaveReplay(header, m.recorder.Inputs())
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "score", header.Score, "inputs", len(m.recorder.Inputs()))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks tap, drags steer
	)

	_, err := p.Run()
	return err
}
