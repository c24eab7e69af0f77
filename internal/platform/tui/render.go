package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/subnav/internal/core"
	"github.com/vovakirdan/subnav/internal/scan"
	"github.com/vovakirdan/subnav/internal/sonarmap"
)

// MarkerRune marks the submarine on the styled map.
const MarkerRune = '@'

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderOptions controls the styled map view.
type RenderOptions struct {
	Title     string
	Color     bool        // Colour terrain symbols
	Marker    *core.Coord // Submarine position, drawn as MarkerRune when inside the map
	MaxWidth  int         // Crop to this many columns around the marker; 0 means no limit
	MaxHeight int         // Crop to this many rows around the marker; 0 means no limit
}

// RenderMap draws the map inside a rounded border with an optional title.
// Cropping happens before the grid is built, so only the visible window is
// ever materialized.
func RenderMap(m *sonarmap.Map, opts RenderOptions) string {
	box := m.BoundingBox()

	var body string
	if _, ok := box.Area(); !ok {
		body = dimStyle.Render(sonarmap.TooLargeMessage(box))
	} else if box.Empty() {
		body = dimStyle.Render(sonarmap.NoDataMessage)
	} else {
		focusCol, focusRow := box.Width/2, box.Height/2
		markCol, markRow := -1, -1
		if opts.Marker != nil && box.Contains(*opts.Marker) {
			markCol, markRow = box.Offset(*opts.Marker)
			focusCol, focusRow = markCol, markRow
		}

		rowStart, rowEnd := cropRange(box.Height, opts.MaxHeight, focusRow)
		colStart, colEnd := cropRange(box.Width, opts.MaxWidth, focusCol)
		view := core.NewBounds(
			core.C(box.MinX+colStart, box.MinY+rowStart),
			core.C(box.MinX+colEnd-1, box.MinY+rowEnd-1),
		)

		grid, err := m.Window(view)
		if err != nil {
			body = dimStyle.Render(sonarmap.TooLargeMessage(box))
		} else {
			lines := make([]string, 0, len(grid))
			for y, row := range grid {
				mark := -1
				if y+rowStart == markRow {
					mark = markCol - colStart
				}
				lines = append(lines, renderRow(row, 0, len(row), mark, opts.Color))
			}
			body = strings.Join(lines, "\n")
		}
	}

	framed := frameStyle.Render(body)
	if opts.Title == "" {
		return framed
	}
	return titleStyle.Render(opts.Title) + "\n" + framed
}

// renderRow styles cells [from, to) of a grid row.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func renderRow(row []rune, from, to, mark int, color bool) string {
	var sb strings.Builder
	sb.Grow((to - from) * 2)

	cellAt := func(x int) (rune, core.Color) {
		if x == mark {
			return MarkerRune, core.ColorBrightWhite
		}
		if !color {
			return row[x], core.ColorDefault
		}
		return row[x], scan.SymbolColor(row[x])
	}

	x := from
	for x < to {
		_, startColor := cellAt(x)

		var run strings.Builder
		for x < to {
			r, c := cellAt(x)
			if c != startColor {
				break
			}
			run.WriteRune(r)
			x++
		}

		style, ok := colorStyles[startColor]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
	return sb.String()
}

// cropRange picks a window of at most limit indices out of n, centred on
// focus and clamped to [0, n).
func cropRange(n, limit, focus int) (start, end int) {
	if limit <= 0 || n <= limit {
		return 0, n
	}
	start = core.Max(0, focus-limit/2)
	start = core.Min(start, n-limit)
	return start, start + limit
}
