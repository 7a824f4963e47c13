package breakout

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/entity"
	"github.com/vovakirdan/tui-breakout/internal/powerup"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	SeparatorRow = '─'
)

// Minimum screen size in cells.
const (
	MinScreenW = 30
	MinScreenH = 15
)

// hudRows is the number of rows above the field.
const hudRows = 2

// Block glyph and color by tier (health 1..7).
var (
	tierGlyphs = []rune{'▒', '▓', '█', '█', '█', '█', '█'}
	tierColors = []core.Color{
		core.ColorCyan,
		core.ColorGreen,
		core.ColorYellow,
		core.ColorOrange,
		core.ColorRed,
		core.ColorMagenta,
		core.ColorBrightWhite,
	}
)

// viewport maps world units to screen cells.
type viewport struct {
	top    int
	rows   int
	cols   int
	scaleX float64
	scaleY float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	rows := dst.Height() - hudRows
	return viewport{
		top:    hudRows,
		rows:   rows,
		cols:   dst.Width(),
		scaleX: float64(dst.Width()) / g.cfg.Field.Width,
		scaleY: float64(rows) / g.cfg.Field.Height,
	}
}

func (v viewport) col(x float64) int {
	return core.Clamp(int(math.Floor(x*v.scaleX)), 0, v.cols-1)
}

func (v viewport) row(y float64) int {
	return v.top + core.Clamp(int(math.Floor(y*v.scaleY)), 0, v.rows-1)
}

// span returns the cells covered by [lo, hi), at least one.
func span(lo, hi int) (int, int) {
	if hi <= lo {
		return lo, 1
	}
	return lo, hi - lo
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}
	if g.round == nil {
		return
	}

	v := g.viewport(dst)
	g.renderHUD(dst)
	g.renderBlocks(dst, v)
	g.renderPowerUps(dst, v)
	g.renderPaddle(dst, v)
	g.renderBalls(dst, v)
	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, level indicator and active effects.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.round.Score()))

	lives := strings.Repeat("♥", max(g.round.Lives(), 0))
	dst.DrawTextColor((dst.Width()-utf8.RuneCountInString(lives))/2, 0, lives, core.ColorBrightRed)

	var levelText string
	if g.mode == config.ModeEndless {
		levelText = fmt.Sprintf("Level: %d", g.LevelNumber())
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.LevelNumber(), g.catalog.Len())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	if effects := g.effectsString(); effects != "" {
		dst.DrawTextColor(1, 1, effects, core.ColorBrightCyan)
		return
	}
	for x := range dst.Width() {
		dst.SetColor(x, 1, SeparatorRow, core.ColorGray)
	}
}

// effectsString lists running timed powers with whole seconds left.
func (g *Game) effectsString() string {
	active := g.round.ActivePowers()
	if len(active) == 0 {
		return ""
	}
	parts := make([]string, 0, len(active))
	for _, p := range active {
		secs := int(math.Ceil(g.round.Remaining(p.Category())))
		parts = append(parts, fmt.Sprintf("%s(%d)", p, secs))
	}
	return strings.Join(parts, " ")
}

func (g *Game) renderBlocks(dst *core.Screen, v viewport) {
	for _, b := range g.round.Blocks() {
		r := b.Rect()
		x, w := span(v.col(r.Left()), v.col(r.Right()))
		y, h := span(v.row(r.Top()), v.row(r.Bottom()))
		if w >= 3 {
			w-- // keep a visible gap between neighbours
		}
		tier := b.Tier() - entity.MinHealth
		dst.FillRect(x, y, w, h, tierGlyphs[tier], tierColors[tier])
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, v viewport) {
	for _, p := range g.round.PowerUps() {
		c := p.Center()
		dst.SetColor(v.col(c.X()), v.row(c.Y()), p.Power.Glyph(), powerColor(p.Power))
	}
}

func powerColor(p powerup.Power) core.Color {
	switch p.Category() {
	case powerup.CategoryBallSize:
		return core.ColorBrightBlue
	case powerup.CategoryBallSpeed:
		return core.ColorBrightYellow
	case powerup.CategoryBallStrength:
		return core.ColorBrightRed
	case powerup.CategoryPaddleSize:
		return core.ColorBrightGreen
	}
	if p == powerup.AddLife {
		return core.ColorRed
	}
	return core.ColorBrightMagenta
}

func (g *Game) renderPaddle(dst *core.Screen, v viewport) {
	r := g.round.Paddle().Rect()
	x, w := span(v.col(r.Left()), v.col(r.Right()))
	dst.FillRect(x, v.row(r.Top()), w, 1, PaddleChar, core.ColorBrightWhite)
}

func (g *Game) renderBalls(dst *core.Screen, v viewport) {
	paddleRow := v.row(g.round.Paddle().Rect().Top())
	for _, b := range g.round.Balls() {
		color := core.ColorBrightYellow
		if b.Strength > b.OriginalStrength {
			color = core.ColorBrightRed
		}
		c := b.Center()
		y := v.row(c.Y())
		if !b.Active {
			// Resting balls sit on the paddle row at terminal resolution
			y = paddleRow - 1
		}
		dst.SetColor(v.col(c.X()), y, BallChar, color)
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateServe:
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")

	case StatePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.round.Score())
		drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.round.Score())
		drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
