package noderunner

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/noderunner/internal/core"
	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// Screen layout. Every world cell is two terminal columns wide.
const (
	cellW   = 2
	hudRow  = 0
	mapRow  = 2
	reserve = mapRow + 4 // HUD, gap, message bar and help line
)

const helpLine = " Arrows/WASD:Move  Z/Q:Dig L  X/E:Dig R  F1:Pause  F2:Restart  F5-8:Save  F9-12:Load  Esc:Menu"

// glyph is how one world cell is drawn.
type glyph struct {
	a, b  rune
	color platformcore.Color
}

var (
	glyphVoid   = glyph{' ', ' ', platformcore.ColorDefault}
	glyphPlayer = map[core.Facing]glyph{
		core.FacingLeft:  {'◂', '☻', platformcore.ColorBrightWhite},
		core.FacingRight: {'☻', '▸', platformcore.ColorBrightWhite},
	}
	glyphClimber   = glyph{'☻', '╣', platformcore.ColorBrightGreen}
	glyphGuard     = glyph{'◉', '◉', platformcore.ColorBrightRed}
	glyphGuardGold = glyph{'◉', '$', platformcore.ColorOrange}
	glyphFlash     = platformcore.ColorBrightCyan
)

var tileGlyphs = map[core.Tile]glyph{
	core.TileEmpty:        glyphVoid,
	core.TileBrick:        {'▒', '▒', platformcore.ColorBrown},
	core.TileTrapBrick:    {'▒', '▒', platformcore.ColorBrown},
	core.TileConcrete:     {'█', '█', platformcore.ColorGray},
	core.TileLadder:       {'╠', '╣', platformcore.ColorCyan},
	core.TileHiddenLadder: {'╞', '╡', platformcore.ColorBrightCyan},
	core.TileRope:         {'━', '━', platformcore.ColorMagenta},
	core.TileGold:         {'◆', '◆', platformcore.ColorBrightYellow},
}

var digGlyphs = [4]glyph{
	{'▓', '▓', platformcore.ColorBrown},
	{'▓', '░', platformcore.ColorBrown},
	{'░', '░', platformcore.ColorBrown},
	{'·', '·', platformcore.ColorBrown},
}

// Render draws the session onto the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()
	w := g.world

	switch w.Phase {
	case core.PhaseGameOver:
		g.renderGameOver(dst)
		return
	case core.PhaseGameComplete:
		g.renderGameComplete(dst)
		return
	}

	g.updateCamera()
	if g.camera.ViewW <= 0 || g.camera.ViewH <= 0 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", platformcore.ColorBrightRed)
		return
	}

	if w.Phase == core.PhaseLevelIntro {
		g.renderIntro(dst)
	} else {
		g.renderHUD(dst)
		g.renderMap(dst)
	}
	g.renderMessage(dst)
	dst.DrawTextColored(0, mapRow+g.camera.ViewH+3, helpLine, platformcore.ColorGray)

	if g.paused {
		g.renderPause(dst)
	}
}

// updateCamera sizes the view to the screen and points it at the player.
func (g *Game) updateCamera() {
	w := g.world
	viewH := g.screenH - reserve
	if viewH < 1 && g.screenH > 0 {
		viewH = 1
	}
	g.camera.SetView(g.screenW/cellW, viewH, w.Width, w.Height)
	if w.Phase == core.PhasePlaying {
		g.camera.Follow(w.Player.X, w.Player.Y, w.Width, w.Height)
	} else {
		g.camera.CenterOn(w.Player.X, w.Player.Y, w.Width, w.Height)
	}
}

// centerCamera snaps the view onto the player after a level change.
func (g *Game) centerCamera() {
	if g.screenW <= 0 || g.screenH <= 0 {
		return
	}
	g.updateCamera()
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	w := g.world
	status := ""
	if w.ExitEnabled {
		status = "ESCAPE!"
	}
	hud := fmt.Sprintf(" Node.%-2d  Score:%-7d  Lives:%d  $%d/%d  %s",
		w.Level+1, w.Score, w.Lives, w.GoldTotal-w.GoldRemaining, w.GoldTotal, status)
	dst.DrawTextColored(0, hudRow, hud, platformcore.ColorCyan)
	if name := g.pack.Name; name != "" {
		dst.DrawTextColored(dst.Width()-len([]rune(name))-1, hudRow, name, platformcore.ColorGray)
	}
}

func (g *Game) renderMap(dst *platformcore.Screen) {
	w := g.world
	hidePlayer := false
	switch w.Phase {
	case core.PhaseLevelOutro, core.PhaseLevelComplete:
		hidePlayer = true
	case core.PhaseDying:
		hidePlayer = (g.animTick/2)%2 != 0
	}

	for vy := 0; vy < g.camera.ViewH; vy++ {
		for vx := 0; vx < g.camera.ViewW; vx++ {
			wx, wy := g.camera.X+vx, g.camera.Y+vy
			gl := g.cellGlyph(wx, wy, !hidePlayer)
			putGlyph(dst, vx, vy, gl)
		}
	}

	if w.Phase == core.PhaseLevelOutro || w.Phase == core.PhaseLevelComplete {
		if vx, vy, ok := g.camera.WorldToView(w.Player.X, g.outroY); ok {
			putGlyph(dst, vx, vy, glyphClimber)
		}
	}
}

func (g *Game) renderIntro(dst *platformcore.Screen) {
	w := g.world
	rows := g.introRows()
	if rows == 0 {
		name := fmt.Sprintf(" ◈ %s ◈ ", w.LevelName)
		mid := mapRow + g.camera.ViewH/2 - 1
		dst.DrawTextCentered(mid, name, platformcore.ColorBrightYellow)
		dst.DrawTextCentered(mid+2, "▸▸▸ GET READY ◂◂◂", platformcore.ColorBrightGreen)
	}

	for vy := 0; vy < g.camera.ViewH; vy++ {
		for vx := 0; vx < g.camera.ViewW; vx++ {
			wx, wy := g.camera.X+vx, g.camera.Y+vy
			if wx < 0 || wy < 0 || wx >= w.Width || wy >= w.Height {
				continue
			}
			fromBottom := w.Height - 1 - wy
			switch {
			case fromBottom >= rows:
				continue
			case fromBottom+1 == rows:
				gl := tileGlyph(w.Tile(wx, wy))
				gl.color = glyphFlash
				putGlyph(dst, vx, vy, gl)
			default:
				putGlyph(dst, vx, vy, g.cellGlyph(wx, wy, true))
			}
		}
	}
	if rows < w.Height {
		dst.DrawTextColored(0, mapRow+g.camera.ViewH+1, " Press ENTER to skip ", platformcore.ColorGray)
	}
}

// cellGlyph picks what is visible in a world cell: the player, then a
// guard, then a dig, then a hole, then the tile.
func (g *Game) cellGlyph(x, y int, withPlayer bool) glyph {
	w := g.world
	if x < 0 || y < 0 || x >= w.Width || y >= w.Height {
		return glyphVoid
	}
	if withPlayer && w.Player.Alive && w.Player.X == x && w.Player.Y == y {
		return glyphPlayer[w.Player.Facing]
	}
	for i := range w.Guards {
		gd := &w.Guards[i]
		if gd.State == core.StateDead || gd.X != x || gd.Y != y {
			continue
		}
		if gd.CarryingGold {
			return glyphGuardGold
		}
		return glyphGuard
	}
	for i := range w.Digs {
		d := &w.Digs[i]
		if d.X == x && d.Y == y {
			return digGlyphs[platformcore.Clamp(d.Stage(), 0, len(digGlyphs)-1)]
		}
	}
	if h, ok := w.HoleAt(x, y); ok {
		return holeGlyph(h, w.Speed.HoleCloseTicks)
	}
	return tileGlyph(w.Tile(x, y))
}

func tileGlyph(t core.Tile) glyph {
	if gl, ok := tileGlyphs[t]; ok {
		return gl
	}
	return glyph{'?', '?', platformcore.ColorRed}
}

// holeGlyph shows an open pit, or the fill level of a closing one.
func holeGlyph(h core.Hole, closeTicks int) glyph {
	if !h.IsClosing() {
		return glyphVoid
	}
	p := h.CloseProgress(closeTicks)
	switch {
	case p < 0.33:
		return glyph{'▁', '▁', platformcore.ColorBrown}
	case p < 0.66:
		return glyph{'▃', '▃', platformcore.ColorBrown}
	default:
		return glyph{'▅', '▅', platformcore.ColorBrown}
	}
}

func putGlyph(dst *platformcore.Screen, vx, vy int, gl glyph) {
	col, row := vx*cellW, mapRow+vy
	dst.SetColored(col, row, gl.a, gl.color)
	dst.SetColored(col+1, row, gl.b, gl.color)
}

func (g *Game) renderMessage(dst *platformcore.Screen) {
	w := g.world
	row := mapRow + g.camera.ViewH + 1
	switch {
	case w.Message != "" && w.Phase != core.PhaseLevelIntro:
		dst.DrawTextColored(0, row, " ◈ "+w.Message+" ", platformcore.ColorBrightYellow)
	case w.Phase == core.PhaseLevelReady && (g.animTick/8)%2 == 0:
		dst.DrawTextColored(0, row, " ▸ Press any key to start", platformcore.ColorBrightGreen)
	case w.Phase == core.PhaseLevelComplete:
		dst.DrawTextColored(0, row, " ▸ ENTER: Next node   ESC: Menu", platformcore.ColorBrightGreen)
	}
}

func (g *Game) renderPause(dst *platformcore.Screen) {
	lines := []string{
		"PAUSED",
		"",
		"F1      Resume",
		"F5-F8   Save slot",
		"F9-F12  Load slot",
		"Esc     Save and leave",
	}
	boxW := 28
	boxH := len(lines) + 2
	viewCols := g.camera.ViewW * cellW
	x := platformcore.Max((viewCols-boxW)/2, 0)
	y := mapRow + platformcore.Max((g.camera.ViewH-boxH)/2, 0)
	box := platformcore.NewRect(x, y, boxW, boxH).Intersect(dst.Bounds())
	if box.Empty() {
		return
	}

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	for i, line := range lines {
		if y+1+i >= box.Bottom()-1 {
			break
		}
		color := platformcore.ColorWhite
		if i == 0 && (g.animTick/8)%2 == 0 {
			color = platformcore.ColorBrightYellow
		}
		dst.DrawTextColored(x+2, y+1+i, line, color)
	}
}

func (g *Game) renderGameOver(dst *platformcore.Screen) {
	banner := []string{
		"╔════════════════════════════════╗",
		"║     ✕ CONNECTION  LOST  ✕      ║",
		"╚════════════════════════════════╝",
	}
	for i, l := range banner {
		dst.DrawTextColored(6, 4+i, l, platformcore.ColorBrightRed)
	}
	w := g.world
	dst.DrawTextColored(8, 9, fmt.Sprintf("◈ Final Score: %d", w.Score), platformcore.ColorWhite)
	dst.DrawTextColored(8, 10, fmt.Sprintf("◈ Reached Node: %d", w.Level+1), platformcore.ColorWhite)
	dst.DrawTextColored(8, 12, "▸ ENTER: Retry from Node 1", platformcore.ColorBrightGreen)
	dst.DrawTextColored(8, 13, "▸ ESC:   Back to menu", platformcore.ColorGray)
}

func (g *Game) renderGameComplete(dst *platformcore.Screen) {
	title := "★ MAINNET SECURED! PROTOCOL COMPLETE! ★"
	bar := strings.Repeat("═", len([]rune(title))+4)
	dst.DrawTextColored(4, 4, "╔"+bar+"╗", platformcore.ColorBrightYellow)
	dst.DrawTextColored(4, 5, "║  "+title+"  ║", platformcore.ColorBrightYellow)
	dst.DrawTextColored(4, 6, "╚"+bar+"╝", platformcore.ColorBrightYellow)

	w := g.world
	dst.DrawTextColored(6, 9, fmt.Sprintf("◈ Final Score: %d", w.Score), platformcore.ColorWhite)
	dst.DrawTextColored(6, 10, fmt.Sprintf("◈ All %d nodes cleared!", g.pack.Len()), platformcore.ColorBrightGreen)
	dst.DrawTextColored(6, 12, "▸ ENTER / ESC: Back to menu", platformcore.ColorBrightGreen)
}
