package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thinkspace/internal/prefs"
)

// camera maps board coordinates to terminal cells. PanX and PanY are the
// board coordinates shown at the top-left cell.
type camera struct {
	PanX float64
	PanY float64
	Zoom float64
}

func newCamera(zoom float64) camera {
	return camera{Zoom: prefs.ClampZoom(zoom)}
}

// toCell returns the cell containing board point (x, y).
func (c camera) toCell(x, y float64) (col, row int) {
	col = int(math.Floor((x - c.PanX) * c.Zoom / UnitsPerCol))
	row = int(math.Floor((y - c.PanY) * c.Zoom / UnitsPerRow))
	return col, row
}

// toBoard returns the board point at the top-left corner of a cell.
func (c camera) toBoard(col, row int) (x, y float64) {
	x = c.PanX + float64(col)*UnitsPerCol/c.Zoom
	y = c.PanY + float64(row)*UnitsPerRow/c.Zoom
	return x, y
}

// cellSize returns the board distance covered by one column and one row.
func (c camera) cellSize() (dx, dy float64) {
	return UnitsPerCol / c.Zoom, UnitsPerRow / c.Zoom
}

// span converts a board extent to a cell count, never below minCells.
func (c camera) span(units float64, perCell float64, minCells int) int {
	n := int(math.Round(units * c.Zoom / perCell))
	if n < minCells {
		return minCells
	}
	return n
}

func (c camera) zoomBy(delta float64) camera {
	// Round to the step so repeated presses land on 0.5, 0.6, ...
	z := math.Round((c.Zoom+delta)*10) / 10
	c.Zoom = prefs.ClampZoom(z)
	return c
}

func (c camera) panBy(cols, rows int) camera {
	dx, dy := c.cellSize()
	c.PanX += float64(cols) * dx
	c.PanY += float64(rows) * dy
	return c
}

// paint is the styling of one cell. It is comparable so that runs of equal
// paint can be rendered with a single lipgloss call.
type paint struct {
	fg   string
	bg   string
	bold bool
}

func (p paint) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if p.fg != "" {
		s = s.Foreground(lipgloss.Color(p.fg))
	}
	if p.bg != "" {
		s = s.Background(lipgloss.Color(p.bg))
	}
	if p.bold {
		s = s.Bold(true)
	}
	return s
}

type cell struct {
	r rune
	p paint
}

// grid is a fixed-size rune canvas. Writes outside the bounds are dropped so
// callers can draw pins that are partially off screen.
type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int, fill cell) *grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &grid{w: w, h: h, cells: make([][]cell, h)}
	for y := range g.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = fill
		}
		g.cells[y] = row
	}
	return g
}

func (g *grid) set(col, row int, r rune, p paint) {
	if col < 0 || row < 0 || col >= g.w || row >= g.h {
		return
	}
	g.cells[row][col] = cell{r: r, p: p}
}

func (g *grid) at(col, row int) (cell, bool) {
	if col < 0 || row < 0 || col >= g.w || row >= g.h {
		return cell{}, false
	}
	return g.cells[row][col], true
}

// text writes s starting at (col, row), clipped to limit runes.
func (g *grid) text(col, row int, s string, limit int, p paint) {
	i := 0
	for _, r := range s {
		if i >= limit {
			return
		}
		g.set(col+i, row, r, p)
		i++
	}
}

// fill paints a rectangle with r.
func (g *grid) fill(col, row, w, h int, r rune, p paint) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			g.set(x, y, r, p)
		}
	}
}

// plain returns the grid without styling, one line per row.
func (g *grid) plain() string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.r)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// render styles each row as runs of equal paint.
func (g *grid) render() string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		var run strings.Builder
		var cur paint
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cur.style().Render(run.String()))
				run.Reset()
			}
		}
		for x, c := range row {
			if x == 0 || c.p != cur {
				flush()
				cur = c.p
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// drawBackdrop fills the grid with the board background and a sparse dot
// lattice anchored to board coordinates, so panning visibly moves the board.
func drawBackdrop(g *grid, cam camera, theme Theme) {
	base := paint{bg: theme.Background}
	dot := paint{fg: theme.BorderMuted, bg: theme.Background}
	const spacing = 64.0
	for row := 0; row < g.h; row++ {
		for col := 0; col < g.w; col++ {
			g.set(col, row, ' ', base)
		}
	}
	dx, dy := cam.cellSize()
	kx := math.Ceil(cam.PanX / spacing)
	ky := math.Ceil(cam.PanY / spacing)
	endX := cam.PanX + float64(g.w)*dx
	endY := cam.PanY + float64(g.h)*dy
	// Step by lattice index: far from the origin x += spacing can round to x.
	for j := 0; j <= g.h; j++ {
		y := (ky + float64(j)) * spacing
		if y >= endY {
			break
		}
		for i := 0; i <= g.w; i++ {
			x := (kx + float64(i)) * spacing
			if x >= endX {
				break
			}
			col, row := cam.toCell(x, y)
			g.set(col, row, '·', dot)
		}
	}
}
