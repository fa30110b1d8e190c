package blockpop

import (
	"fmt"

	platformcore "github.com/vovakirdan/blockpop/internal/core"
	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
)

const (
	cellW     = 3 // terminal columns per grid cell
	hudHeight = 3
)

// boardSize returns the board footprint including its frame.
func boardSize(grid *core.Grid) (w, h int) {
	return grid.W()*cellW + 2, grid.H() + 2
}

var simpleColors = map[core.SimpleColor][2]platformcore.Color{
	core.ColorRed:    {platformcore.ColorRed, platformcore.ColorBrightRed},
	core.ColorGreen:  {platformcore.ColorGreen, platformcore.ColorBrightGreen},
	core.ColorBlue:   {platformcore.ColorBlue, platformcore.ColorBrightBlue},
	core.ColorYellow: {platformcore.ColorYellow, platformcore.ColorBrightYellow},
	core.ColorPurple: {platformcore.ColorMagenta, platformcore.ColorBrightMagenta},
}

var rocketGlyphs = map[core.Orientation]rune{
	core.OrientationHorizontal: '↔',
	core.OrientationVertical:   '↕',
	core.OrientationBilinear:   '✛',
}

var stoneGlyphs = [...]rune{'█', '▓', '▒', '░'}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		msg := "Level failed to load"
		if g.failure != "" {
			msg = g.failure
		}
		g.renderOverlay(dst, dst.Height()/2, msg, "Press Q to quit")
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, dst.Height()/2, "Window too small", "Please resize terminal")
		return
	}

	grid := g.engine.Grid()
	w, h := boardSize(grid)
	frame := platformcore.Rect{X: (dst.Width() - w) / 2, Y: hudHeight, W: w, H: h}

	g.renderHUD(dst)
	dst.DrawBox(frame, platformcore.ColorGray)
	g.renderBoard(dst, frame.X+1, frame.Y+1)

	midY := frame.Y + frame.H/2
	switch {
	case g.won:
		g.renderOverlay(dst, midY, "Level cleared!", fmt.Sprintf("Score %d - R to replay, B for menu", g.engine.Score()))
	case g.gameOver:
		g.renderOverlay(dst, midY, "Out of moves", "R to retry, B for menu")
	case g.paused:
		g.renderOverlay(dst, midY, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	dst.DrawTextWithColor(1, 0, g.Title(), platformcore.ColorBrightCyan)

	status := fmt.Sprintf("Score %d", g.engine.Score())
	if g.level.Target > 0 {
		status += fmt.Sprintf("/%d", g.level.Target)
	}
	status += fmt.Sprintf("  Moves %d", g.moves)
	dst.DrawText(dst.Width()-len(status)-1, 0, status)

	dst.DrawTextWithColor(1, 1, "←↑↓→ move  Enter pop  P pause  R restart  B menu", platformcore.ColorGray)
}

func (g *Game) renderBoard(dst *platformcore.Screen, ox, oy int) {
	grid := g.engine.Grid()
	for y := 0; y < grid.H(); y++ {
		for x := 0; x < grid.W(); x++ {
			sx, sy := ox+x*cellW, oy+y
			s := grid.At(core.C(x, y))
			switch {
			case s == nil:
				continue
			case s.Kind() == core.SlotHasItem:
				dst.SetWithColor(sx+1, sy, '◇', platformcore.ColorGray)
			default:
				dst.SetWithColor(sx+1, sy, '·', platformcore.ColorGray)
			}
		}
	}

	// Popping blocks have left their slot but still have a position.
	for _, b := range g.engine.Scene().Blocks() {
		s := b.Slot()
		if s == nil || !b.IsVisible() || b.Pose().Hidden {
			continue
		}
		c := s.Coord()
		r, color := g.glyph(b)
		dst.SetWithColor(ox+c.X*cellW+1, oy+c.Y, r, color)
	}

	if grid.InBounds(g.cursor) && !g.gameOver {
		sx, sy := ox+g.cursor.X*cellW, oy+g.cursor.Y
		dst.SetWithColor(sx, sy, '[', platformcore.ColorBrightWhite)
		dst.SetWithColor(sx+2, sy, ']', platformcore.ColorBrightWhite)
	}
}

func (g *Game) glyph(b core.Block) (rune, platformcore.Color) {
	if b.HasPopped() {
		r := '✶'
		if tl, ok := g.engine.Animator().(*core.Timeline); ok {
			if track, ok := tl.ActiveFor(b.ID()); ok && track.Progress() > 0.5 {
				r = '·'
			}
		}
		return r, platformcore.ColorWhite
	}

	switch v := b.(type) {
	case *core.SimpleBlock:
		shades := simpleColors[v.Color()]
		r := '●'
		if v.Pose().Shaking {
			r = '◉'
		}
		if v.IsHighlighted() {
			return r, shades[1]
		}
		return r, shades[0]
	case *core.Rocket:
		color := platformcore.ColorOrange
		if v.Pose().Armed {
			color = platformcore.ColorBrightYellow
		}
		return rocketGlyphs[v.Orientation()], color
	case *core.Stone:
		return stoneGlyphs[min(int(v.Stage()), len(stoneGlyphs)-1)], platformcore.ColorGray
	}
	return '?', platformcore.ColorDefault
}

func (g *Game) renderOverlay(dst *platformcore.Screen, y int, title, hint string) {
	width := max(len([]rune(title)), len([]rune(hint))) + 4
	box := dst.Bounds().Centered(width, 4)
	box.Y = y - 2
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextWithColor(box.X+(width-len([]rune(title)))/2, box.Y+1, title, platformcore.ColorBrightWhite)
	dst.DrawText(box.X+(width-len([]rune(hint)))/2, box.Y+2, hint)
}
