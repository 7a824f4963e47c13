package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// CuePlayer plays the sound cues of a step. *audio.Player implements it.
type CuePlayer interface {
	PlayAll(cues []core.Cue)
}

// snapshotter is implemented by games that can encode their final state.
type snapshotter interface {
	Snapshot() ([]byte, error)
}

// progressReporter is implemented by games with level progression.
type progressReporter interface {
	LevelNumber() int
	Cleared() int
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Store      *storage.Store // nil disables score saving
	Sound      CuePlayer      // nil is silent
	Logger     *log.Logger    // nil discards output
	Player     string         // Name recorded with scores
	Standalone bool           // Back quits the program instead of returning to a menu
}

// GameModel is the Bubble Tea model that drives one game with a real-time
// frame clock.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	opts      GameOptions
	config    core.RuntimeConfig
	keys      GameKeyMap
	now       func() time.Time
	pressed   core.InputFrame           // One-shot actions since the last tick
	heldUntil map[core.Action]time.Time // Direction keys and when they lapse
	lastTick  time.Time
	gameState core.GameState

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	cfg = cfg.WithDefaults()
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keys:      DefaultGameKeyMap(),
		now:       time.Now,
		pressed:   core.NewInputFrame(),
		heldUntil: make(map[core.Action]time.Time),
	}
}

// Init resets the game and starts the frame clock.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// World units are independent of the terminal, so no reset is needed
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		// Back to menu only when nothing is in flight
		if m.gameState.GameOver || m.gameState.Paused {
			if m.opts.Standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		m.hold(action, m.now())
	case core.ActionNone:
	default:
		m.pressed.Set(action)
	}
	return m, nil
}

// hold marks a direction as held. Pressing one direction releases the other.
func (m GameModel) hold(a core.Action, now time.Time) {
	m.heldUntil[a] = now.Add(holdWindow)
	switch a {
	case core.ActionLeft:
		delete(m.heldUntil, core.ActionRight)
	case core.ActionRight:
		delete(m.heldUntil, core.ActionLeft)
	}
}

// frame builds the input for a tick at time now.
func (m GameModel) frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	for a := range m.pressed.Actions {
		in.Set(a)
	}
	for a, until := range m.heldUntil {
		if now.Before(until) {
			in.Set(a)
		} else {
			delete(m.heldUntil, a)
		}
	}
	return in
}

// handleTick advances the game by the wall-clock time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now
	if dt <= 0 {
		// The game ignores empty steps, so keep one-shot actions for the next one
		return m, tickCmd(m.config.TickRate)
	}
	in := m.frame(now)
	m.pressed.Clear()

	// Restart with a fresh seed
	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(dt, in)
	m.gameState = result.State
	if m.opts.Sound != nil && len(result.Cues) > 0 {
		m.opts.Sound.PlayAll(result.Cues)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game with its final snapshot.
func (m GameModel) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.gameState.Score,
		Seed:   m.config.Seed,
	}
	if p, ok := m.game.(progressReporter); ok {
		entry.Level = p.LevelNumber()
		entry.Cleared = p.Cleared()
	}
	if s, ok := m.game.(snapshotter); ok {
		data, err := s.Snapshot()
		if err != nil {
			m.opts.Logger.Warn("snapshot not saved", "err", err)
		}
		entry.Snapshot = data
	}

	id, err := m.opts.Store.SaveScore(entry)
	if err != nil {
		m.opts.Logger.Warn("score not saved", "err", err)
		return
	}
	m.opts.Logger.Info("score saved", "id", id, "game", entry.GameID, "score", entry.Score)
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot not saved", "err", err)
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot not saved", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
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

// Run plays a single game in the current terminal until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Standalone = true
	p := tea.NewProgram(
		NewGameModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
