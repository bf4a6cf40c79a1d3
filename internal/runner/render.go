package runner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/rolling-stone/internal/core"
	"github.com/vovakirdan/rolling-stone/internal/track"
)

// Visual characters for rendering
const (
	BallChar     = '●'
	AirBallChar  = 'O'
	GroundChar   = '·'
	SeamChar     = '-'
	BlockChar    = '█'
	OverheadChar = '▒'
	RockChar     = 'o'
	ShadowChar   = '∘'
)

// view maps world X/Z onto screen cells: X runs across, Z runs up the
// screen with the ball a few rows above the bottom edge.
type view struct {
	cx, row  int
	cols     float64 // columns per world unit
	units    float64 // world units per row
	originZ  float64
	top, bot int
}

func (g *Game) view(dst *core.Screen) view {
	v := g.cfg.View
	cols, units := v.ColumnsPerUnit, v.UnitsPerRow
	if cols <= 0 {
		cols = 3
	}
	if units <= 0 {
		units = 1
	}
	return view{
		cx:      dst.Width() / 2,
		row:     dst.Height() - 1 - v.RowsBehind,
		cols:    cols,
		units:   units,
		originZ: g.motor.Position.Z(),
		top:     1,
		bot:     dst.Height() - 1,
	}
}

func (v view) world(col, row int) mgl64.Vec3 {
	return mgl64.Vec3{
		(float64(col-v.cx) + 0.5) / v.cols,
		0,
		v.originZ + float64(v.row-row)*v.units,
	}
}

func (v view) col(x float64) int {
	return v.cx + int(math.Floor(x*v.cols))
}

func (v view) rowOf(z float64) int {
	return v.row - int(math.Round((z-v.originZ)/v.units))
}

// Render draws the current run to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.gen == nil {
		return
	}
	v := g.view(dst)

	g.drawGround(dst, v)

	g.gather()
	for _, s := range g.solids {
		r, c := BlockChar, core.ColorRed
		if s.Box.Min.Y() > 2*g.cfg.Player.Radius {
			r, c = OverheadChar, core.ColorGray
		}
		for row := v.rowOf(s.Box.Max.Z()); row <= v.rowOf(s.Box.Min.Z()); row++ {
			if row < v.top || row > v.bot {
				continue
			}
			for col := v.col(s.Box.Min.X()); col <= v.col(s.Box.Max.X()); col++ {
				dst.SetColored(col, row, r, c)
			}
		}
	}
	for _, b := range g.balls {
		row := v.rowOf(b.Position.Z())
		if row < v.top || row > v.bot {
			continue
		}
		r, c := RockChar, core.ColorOrange
		if b.Position.Y()-b.Radius > 2*g.cfg.Player.Radius {
			r, c = ShadowChar, core.ColorYellow
		}
		dst.SetColored(v.col(b.Position.X()), row, r, c)
	}

	r := BallChar
	if !g.motor.Grounded {
		r = AirBallChar
	}
	dst.SetColored(v.col(g.motor.Position.X()), v.row, r, core.ColorBrightWhite)

	g.drawHUD(dst)
}

func (g *Game) drawGround(dst *core.Screen, v view) {
	for row := v.top; row <= v.bot; row++ {
		for col := 0; col < dst.Width(); col++ {
			p := v.world(col, row)
			seg := g.gen.SegmentAt(p)
			if seg == nil {
				continue
			}
			r := GroundChar
			if math.Abs(p.Z()-seg.EntryWorld().Z()) < v.units/2 {
				r = SeamChar
			}
			dst.SetColored(col, row, r, groundColor(seg))
		}
	}
}

func groundColor(seg *track.Segment) core.Color {
	switch seg.Prefab.Kind {
	case "plain":
		return core.ColorGray
	case "chunk":
		return core.ColorBrown
	case "falling_balls":
		return core.ColorYellow
	case "scripted":
		return core.ColorMagenta
	default:
		return core.ColorCyan
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawText(2, 0, g.printer.Sprintf(" %d m ", st.Score))

	right := g.printer.Sprintf(" Spd: %.1f ", g.motor.Velocity.Z())
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		right = g.printer.Sprintf(" Lvl: %.0f%% ", g.difficulty.Level(g.meters(), g.elapsed)*100) + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-2, 0, right)

	switch g.session.Phase() {
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case PhaseOver:
		drawCenteredMessage(dst, "GAME OVER: "+st.Reason,
			g.printer.Sprintf("Final distance %d m  |  R restart", st.Score))
	case PhaseComplete:
		drawCenteredMessage(dst, "LEVEL COMPLETE",
			g.printer.Sprintf("Distance %d m  |  R restart", st.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
