package compare

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func (report *Report) counts() (labels []string, counts []int) {
	for _, section := range report.Sections() {
		labels = append(labels, section.Sheet)
		counts = append(counts, section.Set.Len())
	}
	return
}

func (report *Report) title() string {
	return report.Sample1 + " vs " + report.Sample2
}

// PlotHTML renders an echarts bar chart of the section sizes
func (report *Report) PlotHTML(w io.Writer) error {
	var (
		bar            = charts.NewBar()
		labels, counts = report.counts()
	)
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    report.title(),
			Subtitle: "variants by Gene/Chr/Start",
		}))

	bar.SetXAxis(labels).
		AddSeries("variants", generateBarItems(counts))
	return bar.Render(w)
}

func generateBarItems(vs []int) []opts.BarData {
	var items = make([]opts.BarData, 0, len(vs))
	for _, v := range vs {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}

// PlotPNG saves the same bar chart as a png image
func (report *Report) PlotPNG(path string) error {
	var (
		p              = plot.New()
		labels, counts = report.counts()
		values         = make(plotter.Values, len(counts))
	)
	for i, c := range counts {
		values[i] = float64(c)
	}

	p.Title.Text = report.title()
	p.Y.Label.Text = "variants"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(1)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
