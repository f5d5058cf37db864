package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ufo-race/internal/arena"
	"github.com/vovakirdan/ufo-race/internal/core"
)

// Visual characters for rendering
const (
	SplitChar     = '─'
	MeteorChar    = '●'
	CometChar     = '◆'
	StarChar      = '★'
	BlackHoleChar = '@'
	BulletChar    = '•'
	BarFull       = '█'
	BarEmpty      = '░'
	ShipGlyph     = "<O>"
)

const barWidth = 10

// viewport maps field coordinates onto a block of screen cells.
type viewport struct {
	x0, y0     int
	cols, rows int
	w, h       float64
}

func (v viewport) cell(x, y float64) (int, int) {
	cx := v.x0 + int(x/v.w*float64(v.cols))
	cy := v.y0 + int(y/v.h*float64(v.rows))
	return cx, cy
}

func (v viewport) contains(cx, cy int) bool {
	return cx >= v.x0 && cx < v.x0+v.cols && cy >= v.y0 && cy < v.y0+v.rows
}

// ArenaStatus carries client-side state shown alongside the session.
type ArenaStatus struct {
	LinkDown bool
	Offline  bool
}

// DrawArena renders the session into dst. The first row shows Player 1,
// the last row Player 2, and the rows between show the field.
func DrawArena(dst *core.Screen, s *arena.Session, st ArenaStatus) {
	dst.Clear()
	if dst.Height() < 4 || dst.Width() < 20 {
		dst.DrawText(0, 0, "terminal too small")
		return
	}

	w, h := s.Size()
	v := viewport{x0: 0, y0: 1, cols: dst.Width(), rows: dst.Height() - 2, w: w, h: h}

	_, splitY := v.cell(0, s.Split())
	dst.DrawHLine(0, splitY, dst.Width(), SplitChar, core.ColorGray)

	for _, r := range []arena.Role{arena.RoleTop, arena.RoleBottom} {
		for _, hz := range s.Hazards(r) {
			drawHazard(dst, v, hz)
		}
	}
	for _, r := range []arena.Role{arena.RoleTop, arena.RoleBottom} {
		c := core.ColorWhite
		if r != s.Role() {
			c = core.ColorRed
		}
		for _, p := range s.Projectiles(r) {
			if cx, cy := v.cell(p.X, p.Y); v.contains(cx, cy) {
				dst.SetColored(cx, cy, BulletChar, c)
			}
		}
	}
	for _, r := range []arena.Role{arena.RoleTop, arena.RoleBottom} {
		drawShip(dst, v, s.Ship(r))
	}

	drawHUD(dst, 0, s, arena.RoleTop, st)
	drawHUD(dst, dst.Height()-1, s, arena.RoleBottom, st)

	switch {
	case s.GameOver():
		drawPopup(dst, core.ColorRed, "game over ^_^", fmt.Sprintf("%s wins!!", s.Winner()), "r restart · q quit")
	case s.Paused():
		drawPopup(dst, core.ColorWhite, "paused...")
	}
}

func drawHazard(dst *core.Screen, v viewport, hz arena.Hazard) {
	cx, cy := v.cell(hz.X, hz.Y)
	if !v.contains(cx, cy) {
		return
	}
	switch hz.Kind {
	case arena.HazardStar:
		dst.SetColored(cx, cy, StarChar, core.ColorYellow)
	case arena.HazardBlackHole:
		dst.SetColored(cx, cy, BlackHoleChar, core.ColorPurple)
	default:
		r := MeteorChar
		if hz.Variant == arena.VariantComet {
			r = CometChar
		}
		dst.SetColored(cx, cy, r, core.ColorRed)
	}
}

func drawShip(dst *core.Screen, v viewport, sh arena.Ship) {
	cx, cy := v.cell(sh.X, sh.Y)
	c := sh.Color
	if sh.Teleported {
		c = core.ColorPurple
	}
	for i, r := range ShipGlyph {
		x := cx - 1 + i
		if v.contains(x, cy) {
			dst.SetColored(x, cy, r, c)
		}
	}
}

// drawHUD writes one player's health bar and, for the local player,
// collected stars and power-up state.
func drawHUD(dst *core.Screen, y int, s *arena.Session, r arena.Role, st ArenaStatus) {
	sh := s.Ship(r)
	label := fmt.Sprintf("P%d", int(r))
	if r == s.Role() {
		label += "*"
	}
	x := 1
	dst.DrawTextColored(x, y, label, core.ColorWhite)
	x += len(label) + 1

	filled := core.Clamp(sh.Score, 0, 100) * barWidth / 100
	dst.DrawTextColored(x, y, strings.Repeat(string(BarFull), filled), healthColor(sh.Score))
	dst.DrawTextColored(x+filled, y, strings.Repeat(string(BarEmpty), barWidth-filled), core.ColorGray)
	x += barWidth + 1
	dst.DrawText(x, y, fmt.Sprintf("%4d", sh.Score))
	x += 5

	if r != s.Role() {
		if st.Offline {
			dst.DrawTextColored(x, y, "OFFLINE", core.ColorGray)
		} else if st.LinkDown {
			dst.DrawTextColored(x, y, "LINK DOWN", core.ColorRed)
		}
		return
	}

	stars := fmt.Sprintf("%c %d/%d", StarChar, sh.Stars.Len(), s.Config().PowerUps.ConstellationSize)
	dst.DrawTextColored(x, y, stars, core.ColorYellow)
	x += len([]rune(stars)) + 1
	if sh.AutoShoot {
		dst.DrawTextColored(x, y, "AUTO-SHOOT", core.ColorGreen)
		x += len("AUTO-SHOOT") + 1
	}
	if sh.Teleported {
		dst.DrawTextColored(x, y, "WARPED", core.ColorPurple)
	}
}

func healthColor(score int) core.Color {
	switch {
	case score > 50:
		return core.ColorGreen
	case score > 20:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// drawPopup draws a centered box with the given lines; the first line uses c.
func drawPopup(dst *core.Screen, c core.Color, lines ...string) {
	inner := 0
	for _, l := range lines {
		inner = max(inner, len([]rune(l)))
	}
	bw := inner + 4
	bh := len(lines) + 2
	box := core.NewRect((dst.Width()-bw)/2, (dst.Height()-bh)/2, bw, bh)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		lc := core.ColorWhite
		if i == 0 {
			lc = c
		}
		dst.DrawTextCentered(box.Y+1+i, l, lc)
	}
}
