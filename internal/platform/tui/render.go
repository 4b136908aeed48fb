package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zone-arena/internal/config"
	"github.com/vovakirdan/zone-arena/internal/core"
	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPurple:        lipgloss.NewStyle().Foreground(lipgloss.Color("93")),
	core.ColorDarkRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("52")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport maps arena coordinates onto a block of terminal cells.
type Viewport struct {
	Bounds core.Bounds
	X, Y   int // Top-left cell
	Cols   int
	Rows   int
}

// ToCell returns the cell containing arena point p.
func (v Viewport) ToCell(p core.Vec2) (int, int) {
	if v.Bounds.W <= 0 || v.Bounds.H <= 0 {
		return v.X, v.Y
	}
	cx := int(math.Floor(p.X * float64(v.Cols) / v.Bounds.W))
	cy := int(math.Floor(p.Y * float64(v.Rows) / v.Bounds.H))
	return v.X + core.Clamp(cx, 0, max(0, v.Cols-1)), v.Y + core.Clamp(cy, 0, max(0, v.Rows-1))
}

// ToWorld returns the arena point at the center of cell (x, y).
func (v Viewport) ToWorld(x, y int) core.Vec2 {
	if v.Cols <= 0 || v.Rows <= 0 {
		return core.Vec2{}
	}
	wx := (float64(x-v.X) + 0.5) * v.Bounds.W / float64(v.Cols)
	wy := (float64(y-v.Y) + 0.5) * v.Bounds.H / float64(v.Rows)
	return v.Bounds.ClampInset(core.V(wx, wy), 0)
}

// Contains reports whether cell (x, y) lies inside the viewport.
func (v Viewport) Contains(x, y int) bool {
	return x >= v.X && x < v.X+v.Cols && y >= v.Y && y < v.Y+v.Rows
}

// enemyGlyphs are drawn per enemy kind.
var enemyGlyphs = map[config.EnemyKind]rune{
	config.EnemyGrunt:  'g',
	config.EnemyScout:  's',
	config.EnemySniper: 'x',
	config.EnemyHeavy:  'H',
}

// lootGlyphs are drawn per loot kind.
var lootGlyphs = map[arena.LootKind]struct {
	r rune
	c core.Color
}{
	arena.LootHealth: {'+', core.ColorBrightGreen},
	arena.LootArmor:  {'#', core.ColorBrightBlue},
	arena.LootWeapon: {'W', core.ColorBrightYellow},
}

// DrawSnapshot draws the arena snapshot into the viewport area of s.
// Later layers overwrite earlier ones: zone, loot, explosions, bullets,
// enemies, then the player on top.
func DrawSnapshot(s *core.Screen, snap arena.Snapshot, v Viewport) {
	for y := v.Y; y < v.Y+v.Rows; y++ {
		for x := v.X; x < v.X+v.Cols; x++ {
			p := v.ToWorld(x, y)
			switch d := p.Dist(snap.Zone.Center); {
			case d > snap.Zone.Radius:
				s.SetColored(x, y, '░', core.ColorDarkRed)
			case d > snap.Zone.TargetRadius && snap.Zone.Radius > snap.Zone.TargetRadius:
				s.SetColored(x, y, '·', core.ColorGray)
			default:
				s.Set(x, y, ' ')
			}
		}
	}

	for _, l := range snap.Loot {
		if l.Collected {
			continue
		}
		g := lootGlyphs[l.Kind]
		x, y := v.ToCell(l.Pos)
		s.SetColored(x, y, g.r, g.c)
	}

	for _, e := range snap.Explosions {
		drawDisc(s, v, e.Pos, e.DrawRadius(), '*', core.ColorOrange)
	}

	for _, b := range snap.Bullets {
		if b.Destroyed {
			continue
		}
		x, y := v.ToCell(b.Pos)
		if b.FromPlayer {
			s.SetColored(x, y, '•', b.Color)
		} else {
			s.SetColored(x, y, '∙', core.ColorBrightRed)
		}
	}

	for _, e := range snap.Enemies {
		if e.Destroyed {
			continue
		}
		r, ok := enemyGlyphs[e.Kind]
		if !ok {
			r = 'e'
		}
		x, y := v.ToCell(e.Pos)
		s.SetColored(x, y, r, e.Color)
	}

	px, py := v.ToCell(snap.Player.Pos)
	glyph := '@'
	if snap.Dashing {
		glyph = '%'
	}
	s.SetColored(px, py, glyph, snap.Player.Color)

	// Aim marker one cell along the aim angle.
	ax := px + int(math.Round(math.Cos(snap.Player.Angle)))
	ay := py + int(math.Round(math.Sin(snap.Player.Angle)))
	if v.Contains(ax, ay) && (ax != px || ay != py) {
		s.SetColored(ax, ay, '·', core.ColorBrightWhite)
	}
}

// drawDisc fills every viewport cell whose center lies within radius of c.
func drawDisc(s *core.Screen, v Viewport, c core.Vec2, radius float64, r rune, col core.Color) {
	x0, y0 := v.ToCell(c.Sub(core.V(radius, radius)))
	x1, y1 := v.ToCell(c.Add(core.V(radius, radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if v.ToWorld(x, y).Dist(c) <= radius {
				s.SetColored(x, y, r, col)
			}
		}
	}
	// Small blasts still show as one cell.
	cx, cy := v.ToCell(c)
	s.SetColored(cx, cy, r, col)
}
