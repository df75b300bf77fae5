package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thinkspace/internal/board"
	"github.com/five82/thinkspace/internal/imageintake"
)

// dashedBorder is the fifth pin shape; lipgloss has no dashed preset.
var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// shapeBorders is indexed by Pin.Shape.
var shapeBorders = [board.ShapeCount]lipgloss.Border{
	lipgloss.NormalBorder(),
	lipgloss.RoundedBorder(),
	lipgloss.ThickBorder(),
	lipgloss.DoubleBorder(),
	dashedBorder,
}

var shapeNames = [board.ShapeCount]string{"square", "rounded", "bold", "double", "dashed"}

var moodNames = [board.MoodCount]string{"none", "calm", "tense", "urgent"}

func shapeBorder(shape int) lipgloss.Border {
	if shape < 0 || shape >= len(shapeBorders) {
		return shapeBorders[0]
	}
	return shapeBorders[shape]
}

func shapeName(shape int) string {
	if shape < 0 || shape >= len(shapeNames) {
		return "?"
	}
	return shapeNames[shape]
}

func moodName(mood int) string {
	if mood < 0 || mood >= len(moodNames) {
		return "?"
	}
	return moodNames[mood]
}

// thoughtGlyph returns the badge drawn on a pin's top edge.
func thoughtGlyph(t board.Thought) string {
	switch t {
	case board.ThoughtQuestion:
		return "?"
	case board.ThoughtIdea:
		return "*"
	case board.ThoughtDoubt:
		return "!"
	case board.ThoughtDecision:
		return "✓"
	default:
		return " "
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

// pinRect is a pin's footprint in cells.
type pinRect struct {
	col, row int
	w, h     int
}

// pinBounds returns the board-unit size of a pin.
func pinBounds(p board.Pin) (w, h float64) {
	if p.HasImage() && p.ImageSize != nil {
		w, h = imageintake.Fit(p.ImageSize.W, p.ImageSize.H, ImageBound)
		if w > 0 && h > 0 {
			return w, h
		}
	}
	return PinWidth, PinHeight
}

func layoutPin(p board.Pin, cam camera) pinRect {
	col, row := cam.toCell(p.X, p.Y)
	bw, bh := pinBounds(p)
	return pinRect{
		col: col,
		row: row,
		w:   cam.span(bw, UnitsPerCol, MinPinCols),
		h:   cam.span(bh, UnitsPerRow, MinPinRows),
	}
}

// groupLabels numbers groups g1, g2, ... in order of their first member.
func groupLabels(pins []board.Pin) map[string]string {
	labels := make(map[string]string)
	for _, p := range pins {
		if !p.Grouped() {
			continue
		}
		if _, ok := labels[p.GroupID]; !ok {
			labels[p.GroupID] = fmt.Sprintf("g%d", len(labels)+1)
		}
	}
	return labels
}

// pinBody returns the lines shown inside a pin.
func pinBody(p board.Pin, width, lines int) []string {
	if p.HasImage() {
		body := []string{"[image]"}
		if p.ImageSize != nil {
			body = append(body, fmt.Sprintf("%.0fx%.0f", p.ImageSize.W, p.ImageSize.H))
		}
		if p.Text != "" {
			body = append(body, wrapText(p.Text, width, lines)...)
		}
		if len(body) > lines {
			body = body[:lines]
		}
		return body
	}
	if p.Text == "" {
		return nil
	}
	return wrapText(p.Text, width, lines)
}

type pinDecor struct {
	focused  bool
	selected bool
	group    string
}

// drawPin paints one pin onto the grid.
func drawPin(g *grid, p board.Pin, cam camera, theme Theme, d pinDecor) {
	r := layoutPin(p, cam)
	fill := theme.PinColor(p.ID)

	edge := paint{fg: theme.Border, bg: fill}
	switch {
	case d.focused:
		edge = paint{fg: theme.BorderFocus, bg: fill, bold: true}
	case d.selected:
		edge = paint{fg: theme.Accent, bg: fill, bold: true}
	}
	body := paint{fg: theme.PinText, bg: fill}

	g.fill(r.col, r.row, r.w, r.h, ' ', body)

	b := shapeBorder(p.Shape)
	right, bottom := r.col+r.w-1, r.row+r.h-1
	for x := r.col + 1; x < right; x++ {
		g.set(x, r.row, firstRune(b.Top), edge)
		g.set(x, bottom, firstRune(b.Bottom), edge)
	}
	for y := r.row + 1; y < bottom; y++ {
		g.set(r.col, y, firstRune(b.Left), edge)
		g.set(right, y, firstRune(b.Right), edge)
	}
	g.set(r.col, r.row, firstRune(b.TopLeft), edge)
	g.set(right, r.row, firstRune(b.TopRight), edge)
	g.set(r.col, bottom, firstRune(b.BottomLeft), edge)
	g.set(right, bottom, firstRune(b.BottomRight), edge)

	// Top edge: thought badge on the left, group label and mood on the right.
	g.text(r.col+1, r.row, "["+thoughtGlyph(p.Thought)+"]", r.w-2, edge)
	tail := r.w - 2
	if mood := theme.MoodColor(p.Mood); mood != "" {
		g.set(right-1, r.row, '●', paint{fg: mood, bg: fill, bold: true})
		tail--
	}
	if d.group != "" {
		label := " " + d.group + " "
		start := r.col + 1 + tail - len(label)
		if start > r.col+4 {
			g.text(start, r.row, label, len(label), edge)
		}
	}
	if d.selected {
		g.set(r.col+1, bottom, '+', edge)
	}

	inner := r.w - 4
	lines := pinBody(p, inner, r.h-2)
	if len(lines) == 0 && d.focused {
		g.text(r.col+2, r.row+1, "enter to write", inner, paint{fg: theme.Faint, bg: fill})
		return
	}
	for i, line := range lines {
		g.text(r.col+2, r.row+1+i, line, inner, body)
	}
}

// renderBoard draws the backdrop and every pin. The focused pin is drawn last
// so it is never hidden by an overlapping neighbour.
func renderBoard(width, height int, pins []board.Pin, cam camera, theme Theme, focus string, selected map[string]bool) *grid {
	g := newGrid(width, height, cell{r: ' '})
	drawBackdrop(g, cam, theme)

	labels := groupLabels(pins)
	var focused *board.Pin
	for i := range pins {
		p := pins[i]
		if p.ID == focus {
			focused = &pins[i]
			continue
		}
		drawPin(g, p, cam, theme, pinDecor{selected: selected[p.ID], group: labels[p.GroupID]})
	}
	if focused != nil {
		drawPin(g, *focused, cam, theme, pinDecor{
			focused:  true,
			selected: selected[focused.ID],
			group:    labels[focused.GroupID],
		})
	}
	return g
}
