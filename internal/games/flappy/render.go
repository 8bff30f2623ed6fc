package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BeakChar      = '▶'
	BeakDownChar  = '↘'
	BeakUpChar    = '↗'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	DirtChar      = '░'
	CloudSprite   = ".-~~-."
)

// Theme is the palette used to draw the world. Colors never affect the
// simulation except for the particles they tint.
type Theme struct {
	Bird   core.Color
	Beak   core.Color
	Pipe   core.Color
	Cap    core.Color
	Grass  core.Color
	Dirt   core.Color
	Cloud  core.Color
	Text   core.Color
	Title  core.Color
	Accent core.Color
	Danger core.Color

	FlapBurst  core.Color
	ScoreBurst core.Color
	CrashBurst core.Color

	Clouds bool
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Bird:   core.ColorBrightYellow,
		Beak:   core.ColorOrange,
		Pipe:   core.ColorGreen,
		Cap:    core.ColorBrightGreen,
		Grass:  core.ColorBrightGreen,
		Dirt:   core.ColorYellow,
		Cloud:  core.ColorWhite,
		Text:   core.ColorBrightWhite,
		Title:  core.ColorBrightYellow,
		Accent: core.ColorBrightCyan,
		Danger: core.ColorBrightRed,

		FlapBurst:  core.ColorOrange,
		ScoreBurst: core.ColorBrightYellow,
		CrashBurst: core.ColorRed,

		Clouds: true,
	}
}

// cloud is a background decoration; it only depends on the tick.
type cloud struct {
	x, y  float64
	speed float64
}

var clouds = []cloud{
	{x: 90, y: 70, speed: 0.3},
	{x: 310, y: 130, speed: 0.5},
	{x: 520, y: 50, speed: 0.2},
	{x: 690, y: 160, speed: 0.4},
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.Snapshot(), g.theme)
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	cols, rows    float64
	width, height float64
}

func newViewport(dst *core.Screen, s *Snapshot) viewport {
	return viewport{
		cols:   float64(dst.Width()),
		rows:   float64(dst.Height()),
		width:  s.Width,
		height: s.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.cols / v.width))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.rows / v.height))
}

// RenderSnapshot draws a snapshot scaled to the screen size.
func RenderSnapshot(dst *core.Screen, s Snapshot, t Theme) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(dst, &s)

	if t.Clouds {
		drawClouds(dst, v, &s, t)
	}

	groundY := v.row(s.FloorY)
	for _, p := range s.Pipes {
		drawPipe(dst, v, p, groundY, t)
	}

	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, t.Grass)
	for y := groundY + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), DirtChar, t.Dirt)
	}

	for _, p := range s.Particles {
		dst.SetColored(v.col(p.X), v.row(p.Y), particleRune(p.Size), p.Color)
	}

	drawBird(dst, v, &s, t)

	switch s.Mode {
	case ModeIdle:
		drawTitle(dst, v, &s, t)
	case ModePlaying:
		dst.DrawTextCentered(0, fmt.Sprintf(" %d ", s.Score), t.Text)
	case ModeGameOver:
		drawGameOver(dst, v, &s, t)
	}
}

func drawClouds(dst *core.Screen, v viewport, s *Snapshot, t Theme) {
	span := s.Width + 200
	for _, c := range clouds {
		x := math.Mod(c.x-float64(s.Tick)*c.speed, span)
		if x < 0 {
			x += span
		}
		dst.DrawTextColored(v.col(x-100), v.row(c.y), CloudSprite, t.Cloud)
	}
}

func drawPipe(dst *core.Screen, v viewport, p PipeView, groundY int, t Theme) {
	x0 := v.col(p.Top.X)
	x1 := v.col(p.Top.Right())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	w := x1 - x0

	topEnd := v.row(p.Top.Bottom())
	dst.DrawRect(core.NewRect(x0, 0, w, topEnd), PipeChar, t.Pipe)
	if topEnd > 0 {
		dst.DrawHLine(x0, topEnd-1, w, PipeCapTop, t.Cap)
	}

	bottomStart := v.row(p.Bottom.Y)
	if bottomStart < groundY {
		dst.DrawRect(core.NewRect(x0, bottomStart, w, groundY-bottomStart), PipeChar, t.Pipe)
		dst.DrawHLine(x0, bottomStart, w, PipeCapBottom, t.Cap)
	}
}

func drawBird(dst *core.Screen, v viewport, s *Snapshot, t Theme) {
	x, y := v.col(s.Bird.X), v.row(s.Bird.Y)

	beak := BeakChar
	switch {
	case s.Bird.Tilt >= 15:
		beak = BeakDownChar
	case s.Bird.Tilt <= -15:
		beak = BeakUpChar
	}

	wing := '^'
	if (s.Tick/8)%2 == 1 {
		wing = 'v'
	}

	dst.SetColored(x-1, y, wing, t.Bird)
	dst.SetColored(x, y, BirdChar, t.Bird)
	dst.SetColored(x+1, y, beak, t.Beak)
}

func particleRune(size float64) rune {
	switch {
	case size >= 3:
		return '*'
	case size >= 1.5:
		return '+'
	default:
		return '·'
	}
}

func drawTitle(dst *core.Screen, v viewport, s *Snapshot, t Theme) {
	dst.DrawTextCentered(v.row(s.Height/3), "FLAPPY BIRD", t.Title)
	dst.DrawTextCentered(v.row(s.Height/3+60), "Press SPACE or click to flap", t.Text)
	drawButton(dst, v, s.StartButton, "Start", t.Accent)
}

func drawGameOver(dst *core.Screen, v viewport, s *Snapshot, t Theme) {
	dst.DrawTextCentered(v.row(s.Height/3), "Game Over!", t.Danger)
	dst.DrawTextCentered(v.row(s.Height/3+50), fmt.Sprintf("Score: %d", s.Score), t.Text)
	dst.DrawTextCentered(v.row(s.Height/3+100), fmt.Sprintf("High Score: %d", s.HighScore), t.Title)
	drawButton(dst, v, s.RestartButton, "Restart", t.Accent)
}

// drawButton draws a framed control at its scaled world rectangle, grown
// as needed so the label always fits.
func drawButton(dst *core.Screen, v viewport, r core.RectF, label string, c core.Color) {
	x0, y0 := v.col(r.X), v.row(r.Y)
	w := core.Max(v.col(r.Right())-x0, len(label)+4)
	h := core.Max(v.row(r.Bottom())-y0, 3)

	box := core.NewRect(x0, y0, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(x0+(w-len(label))/2, y0+h/2, label, c)
}
