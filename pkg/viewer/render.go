package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/askiada/go-lossplot/pkg/chart"
)

const (
	// room taken by the y axis labels of asciigraph
	axisWidth = 10
	// y label, x label, x range and help lines
	textLines = 4
	minWidth  = 10
	minHeight = 3
)

var (
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// render draws data in a box of width x height cells. Samples are laid out in input order,
// one column each, and samples outside the vertical axis are drawn on its edge.
func render(data *chart.Data, width, height int) string {
	innerWidth := width - borderStyle.GetHorizontalFrameSize()
	plotWidth := max(innerWidth-axisWidth, minWidth)
	plotHeight := max(height-borderStyle.GetVerticalFrameSize()-textLines-1, minHeight)

	ys, outside := columns(data, plotWidth)

	graph := asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.LowerBound(data.Config.YMin),
		asciigraph.UpperBound(data.Config.YMax),
		asciigraph.Precision(2),
	)

	lines := []string{
		labelStyle.Render(data.Config.YLabel),
		graph,
		labelStyle.Render(data.Config.XLabel) + " " + xRange(data),
	}

	if outside > 0 {
		lines = append(lines, fmt.Sprintf("%d samples outside [%g, %g]", outside, data.Config.YMin, data.Config.YMax))
	}

	lines = append(lines, helpStyle.Render("q: quit"))

	if data.Config.Title != "" {
		lines = append([]string{labelStyle.Render(data.Config.Title)}, lines...)
	}

	return borderStyle.Width(max(width-borderStyle.GetHorizontalBorderSize(), minWidth)).Render(strings.Join(lines, "\n"))
}

// columns resamples the points to at most width values and clamps them to the vertical axis.
// It also returns how many points are outside the axis.
func columns(data *chart.Data, width int) ([]float64, int) {
	outside := 0

	for _, pt := range data.Points {
		if !data.InRange(pt.Y) {
			outside++
		}
	}

	total := len(data.Points)
	size := min(total, width)
	ys := make([]float64, size)

	for col := range size {
		y := data.Points[col*total/size].Y
		ys[col] = min(max(y, data.Config.YMin), data.Config.YMax)
	}

	return ys, outside
}

func xRange(data *chart.Data) string {
	if len(data.Labels) == 0 {
		return ""
	}

	first := strings.TrimSpace(data.Labels[0])
	last := strings.TrimSpace(data.Labels[len(data.Labels)-1])

	if len(data.Labels) == 1 {
		return "(" + first + ")"
	}

	return "(" + first + " .. " + last + ")"
}
