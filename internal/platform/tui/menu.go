package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/level"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Main menu entries, top to bottom.
const (
	itemCampaign = iota
	itemEndless
	itemSelectLevel
	itemDifficulty
	itemScores
	itemQuit
	itemCount
)

// difficulties is the cycle order of the difficulty entry.
var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuChoice is what the player picked in the menu.
type MenuChoice struct {
	GameID     string // breakout.IDCampaign or breakout.IDEndless
	Level      string // Start level id, empty keeps the configured one
	Difficulty config.DifficultyPreset
	Scoreboard bool
	Quit       bool
}

// Apply returns opts with the chosen difficulty and start level applied.
func (c MenuChoice) Apply(opts registry.Options) registry.Options {
	cfg := opts.Config
	config.ApplyPreset(&cfg, c.Difficulty)
	if c.Level != "" {
		cfg.Gameplay.StartLevel = c.Level
	}
	opts.Config = cfg
	return opts
}

// MenuModel is the Bubble Tea model for the main menu and the level picker.
type MenuModel struct {
	levels        []*level.Level
	cursor        int
	levelCursor   int
	inLevelSelect bool
	difficulty    int // Index into difficulties
	width         int
	height        int
	keys          MenuKeyMap
	help          help.Model
	choice        *MenuChoice
}

// NewMenuModel creates a menu over the levels of catalog.
func NewMenuModel(catalog *level.Catalog, preset config.DifficultyPreset, width, height int) MenuModel {
	m := MenuModel{
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	if catalog != nil {
		m.levels = catalog.All()
	}
	m.difficulty = 1
	for i, d := range difficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keys.Action(msg)
		if action == MenuActionQuit {
			return m.choose(MenuChoice{Quit: true})
		}
		if m.inLevelSelect {
			return m.updateLevelSelect(action)
		}
		return m.updateMain(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) updateMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		m.cursor = (m.cursor + itemCount - 1) % itemCount
	case MenuActionDown:
		m.cursor = (m.cursor + 1) % itemCount
	case MenuActionLeft:
		if m.cursor == itemDifficulty {
			m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
		}
	case MenuActionRight:
		if m.cursor == itemDifficulty {
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		}
	case MenuActionBack:
		return m.choose(MenuChoice{Quit: true})
	case MenuActionSelect:
		switch m.cursor {
		case itemCampaign:
			return m.play(breakout.IDCampaign, "")
		case itemEndless:
			return m.play(breakout.IDEndless, "")
		case itemSelectLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case itemDifficulty:
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		case itemScores:
			return m.choose(MenuChoice{Scoreboard: true, Difficulty: m.preset()})
		case itemQuit:
			return m.choose(MenuChoice{Quit: true})
		}
	}
	return m, nil
}

func (m MenuModel) updateLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.play(breakout.IDCampaign, m.levels[m.levelCursor].ID)
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

func (m MenuModel) play(gameID, levelID string) (tea.Model, tea.Cmd) {
	return m.choose(MenuChoice{GameID: gameID, Level: levelID, Difficulty: m.preset()})
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice = &c
	return m, tea.Quit
}

func (m MenuModel) preset() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("B R E A K O U T"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		m.viewLevels(&b)
	} else {
		m.viewMain(&b)
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m MenuModel) viewMain(b *strings.Builder) {
	labels := [itemCount]string{
		itemCampaign:    fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		itemEndless:     "Endless",
		itemSelectLevel: "Select Level...",
		itemDifficulty:  fmt.Sprintf("Difficulty: < %s >", m.preset()),
		itemScores:      "High Scores",
		itemQuit:        "Quit",
	}
	for i, label := range labels {
		b.WriteString(centerText(m.line(i == m.cursor, label), m.width))
		b.WriteString("\n")
	}
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	// Scroll so the cursor stays visible
	visible := max(m.height-10, 3)
	start := max(0, min(m.levelCursor-visible/2, len(m.levels)-visible))
	end := min(len(m.levels), start+visible)
	for i := start; i < end; i++ {
		l := m.levels[i]
		label := fmt.Sprintf("%2d. %s", i+1, l.Name)
		b.WriteString(centerText(m.line(i == m.levelCursor, label), m.width))
		b.WriteString("\n")
	}
}

func (m MenuModel) line(selected bool, label string) string {
	if selected {
		return menuCursorStyle.Render("> " + label)
	}
	return "  " + label
}

// Choice returns the selection, or nil while the player is still choosing.
func (m MenuModel) Choice() *MenuChoice {
	return m.choice
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
