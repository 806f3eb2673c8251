// Package preview draws a terrain grid and its traced outlines on a terminal.
//
// The view uses the doubled sample lattice of the mesher: sample (x, z) sits at
// column 2x, row 2z and edge midpoints fall on the odd cells in between, so
// every outline vertex lands on exactly one terminal cell.
package preview

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/grubs-terrain/internal/engine/terrain"
	"github.com/Faultbox/grubs-terrain/pkg/math"
)

// ErrUnknownColor is returned by ParsePalette for names tcell does not know.
var ErrUnknownColor = errors.New("unknown color name")

const (
	solidRune   = '#'
	emptyRune   = '·'
	outlineRune = 'o'
	startRune   = '@'
	scrollStep  = 4
)

// Options controls what the view draws.
type Options struct {
	ShowSamples  bool
	ShowOutlines bool
	Palette      []tcell.Color
}

// ParsePalette resolves color names such as "yellow" or "#ff8800".
func ParsePalette(names []string) ([]tcell.Color, error) {
	colors := make([]tcell.Color, 0, len(names))
	for _, name := range names {
		c := tcell.GetColor(name)
		if c == tcell.ColorDefault {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// Canvas is the part of tcell.Screen the view draws on.
type Canvas interface {
	Size() (int, int)
	Clear()
	Show()
	Sync()
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// View renders one terrain snapshot onto a terminal canvas.
type View struct {
	screen Canvas
	opts   Options

	grid       terrain.Grid
	outlines   [][]math.Vec3
	resolution float32
	stats      terrain.Stats

	// Scroll offset in lattice cells.
	offX, offY int
}

// New creates a view drawing on screen.
func New(screen Canvas, opts Options) *View {
	if len(opts.Palette) == 0 {
		opts.Palette = []tcell.Color{tcell.ColorYellow}
	}
	return &View{screen: screen, opts: opts}
}

// SetTerrain replaces the displayed snapshot with the builder's last rebuild.
func (v *View) SetTerrain(grid terrain.Grid, b *terrain.Builder) {
	v.grid = grid
	v.outlines = b.OutlinePositions()
	v.resolution = b.Resolution()
	v.stats = b.Stats()
	v.offX, v.offY = 0, 0
}

// latticeSize returns the width and height of the doubled lattice.
func (v *View) latticeSize() (int, int) {
	if v.grid == nil {
		return 0, 0
	}
	return 2*v.grid.Width() - 1, 2*v.grid.Height() - 1
}

// toLattice maps a floor position to its lattice cell.
func (v *View) toLattice(p math.Vec3) (int, int) {
	half := v.resolution / 2
	return int(gomath.Round(float64(p.X / half))), int(gomath.Round(float64(p.Z / half)))
}

// Draw redraws the whole screen.
func (v *View) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1 // last row is the status line

	if v.grid != nil && v.opts.ShowSamples {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		for z := 0; z < v.grid.Height(); z++ {
			for x := 0; x < v.grid.Width(); x++ {
				r := emptyRune
				if v.grid.Solid(x, z) {
					r = solidRune
				}
				v.put(2*x, 2*z, width, rows, r, style)
			}
		}
	}

	if v.opts.ShowOutlines {
		for i, loop := range v.outlines {
			style := tcell.StyleDefault.Foreground(v.opts.Palette[i%len(v.opts.Palette)])
			if len(loop) == 0 {
				continue
			}
			for _, p := range loop[1:] {
				lx, lz := v.toLattice(p)
				v.put(lx, lz, width, rows, outlineRune, style)
			}
			// The start is drawn last so the closing entry does not hide it.
			lx, lz := v.toLattice(loop[0])
			v.put(lx, lz, width, rows, startRune, style.Bold(true))
		}
	}

	v.drawStatus(width, height-1)
	v.screen.Show()
}

func (v *View) put(lx, lz, width, rows int, r rune, style tcell.Style) {
	x, y := lx-v.offX, lz-v.offY
	if x < 0 || y < 0 || x >= width || y >= rows {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) drawStatus(width, row int) {
	if row < 0 {
		return
	}
	s := v.stats
	text := fmt.Sprintf(" %dx%d  verts %d  tris %d  outlines %d  walls %d/%d  [arrows] scroll [s]amples [o]utlines [q]uit",
		s.GridWidth, s.GridHeight, s.Vertices, s.Triangles, s.Outlines, s.WallVertices, s.WallTriangles)
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range text {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, row, ' ', nil, style)
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.scroll(-scrollStep, 0)
	case tcell.KeyRight:
		v.scroll(scrollStep, 0)
	case tcell.KeyUp:
		v.scroll(0, -scrollStep)
	case tcell.KeyDown:
		v.scroll(0, scrollStep)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 's':
			v.opts.ShowSamples = !v.opts.ShowSamples
		case 'o':
			v.opts.ShowOutlines = !v.opts.ShowOutlines
		}
	}
	return true
}

// scroll moves the viewport, keeping it inside the lattice.
func (v *View) scroll(dx, dy int) {
	lw, lh := v.latticeSize()
	v.offX = clamp(v.offX+dx, 0, max(lw-1, 0))
	v.offY = clamp(v.offY+dy, 0, max(lh-1, 0))
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

// Run draws the view on screen and processes its events until the user quits.
func Run(screen tcell.Screen, v *View) {
	v.Draw()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}
