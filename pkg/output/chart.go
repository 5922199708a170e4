package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// Default chart size in terminal cells.
const (
	DefaultChartWidth  = 80
	DefaultChartHeight = 20
)

// Series names, drawn in this order so that avg ends on top.
const (
	seriesMin = "min"
	seriesMax = "max"
	seriesAvg = "avg"
)

var seriesColors = map[string]lipgloss.Color{
	seriesAvg: lipgloss.Color("4"), // blue
	seriesMin: lipgloss.Color("1"), // red
	seriesMax: lipgloss.Color("2"), // green
}

// ChartFormatter draws min, max and avg over time as a braille line chart.
type ChartFormatter struct {
	opts FormatOptions
}

// NewChartFormatter creates a new chart formatter with the given options.
func NewChartFormatter(opts FormatOptions) *ChartFormatter {
	return &ChartFormatter{opts: opts}
}

// Name returns the format name.
func (f *ChartFormatter) Name() string {
	return "chart"
}

// Format renders the chart followed by a legend.
func (f *ChartFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if len(report.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No data to chart")
		return err
	}

	width, height := f.size()
	tMin, tMax, yMin, yMax := chartBounds(report)

	chart := timeserieslinechart.New(width, height,
		timeserieslinechart.WithTimeRange(tMin, tMax),
		timeserieslinechart.WithYRange(yMin, yMax),
	)

	r := lipgloss.NewRenderer(w)
	for _, name := range []string{seriesMin, seriesMax, seriesAvg} {
		chart.SetDataSetStyle(name, r.NewStyle().Foreground(seriesColors[name]))
	}

	for _, row := range report.Rows {
		chart.PushDataSet(seriesMin, timeserieslinechart.TimePoint{Time: row.Timestamp, Value: row.Min})
		chart.PushDataSet(seriesMax, timeserieslinechart.TimePoint{Time: row.Timestamp, Value: row.Max})
		chart.PushDataSet(seriesAvg, timeserieslinechart.TimePoint{Time: row.Timestamp, Value: row.Avg})
	}
	chart.DrawBrailleAll()

	title := fmt.Sprintf("%s (%s)", displayName(report), sourceLabel(report))
	if _, err := fmt.Fprintln(w, r.NewStyle().Bold(true).Render(title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, chart.View()); err != nil {
		return err
	}

	legend := fmt.Sprintf("%s  %s  %s",
		r.NewStyle().Foreground(seriesColors[seriesAvg]).Render("━ avg"),
		r.NewStyle().Foreground(seriesColors[seriesMin]).Render("━ min"),
		r.NewStyle().Foreground(seriesColors[seriesMax]).Render("━ max"))
	_, err := fmt.Fprintln(w, legend)
	return err
}

func (f *ChartFormatter) size() (int, int) {
	width, height := f.opts.Width, f.opts.Height
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}
	return width, height
}

// chartBounds returns the time and value ranges of the report, widened so
// that neither range is empty.
func chartBounds(report *Report) (tMin, tMax time.Time, yMin, yMax float64) {
	s := report.Summary
	tMin, tMax = s.Start, s.End
	if !tMax.After(tMin) {
		tMin = tMin.Add(-time.Minute)
		tMax = tMax.Add(time.Minute)
	}

	yMin = min(s.MinValue, s.AvgLow)
	yMax = max(s.MaxValue, s.AvgHigh)
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 1
	}
	return tMin, tMax, yMin - pad, yMax + pad
}
