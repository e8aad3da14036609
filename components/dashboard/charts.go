package dashboard

import (
	"bytes"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// ChartOptions configures StatisticsCharts.
type ChartOptions struct {
	Theme      string
	AssetsHost string
	Height     string
	Cache      RenderCache
}

// StatisticsCharts renders the statistics aggregate as go-echarts HTML.
type StatisticsCharts struct {
	theme      string
	assetsHost string
	height     string
	cache      RenderCache
}

// RenderedCharts holds the chart fragments of the dashboard page.
type RenderedCharts struct {
	Overall   string `json:"overall"`
	ByLocale  string `json:"byLocale"`
	ByFeature string `json:"byFeature,omitempty"`
}

func NewStatisticsCharts(opts ChartOptions) *StatisticsCharts {
	if opts.Theme == "" {
		opts.Theme = types.ThemeWesteros
	}
	if opts.Height == "" {
		opts.Height = defaultChartHeight
	}
	if opts.Cache == nil {
		opts.Cache = NewChartCache(5 * time.Minute)
	}
	return &StatisticsCharts{
		theme:      opts.Theme,
		assetsHost: opts.AssetsHost,
		height:     opts.Height,
		cache:      opts.Cache,
	}
}

// Render builds every chart for stats. The feature chart is skipped when the
// aggregate has no per-feature breakdown.
func (c *StatisticsCharts) Render(stats Statistics) (RenderedCharts, error) {
	var out RenderedCharts
	var err error
	if out.Overall, err = c.cached("overall", stats.OverallCompletionPercentage, func() (string, error) {
		return c.renderOverall(stats.OverallCompletionPercentage)
	}); err != nil {
		return RenderedCharts{}, err
	}
	if out.ByLocale, err = c.cached("locale", stats.CompletionByLocale, func() (string, error) {
		return c.renderByLocale(stats.CompletionByLocale)
	}); err != nil {
		return RenderedCharts{}, err
	}
	if len(stats.CompletionByFeature) > 0 {
		if out.ByFeature, err = c.cached("feature", stats.CompletionByFeature, func() (string, error) {
			return c.renderByFeature(stats.CompletionByFeature)
		}); err != nil {
			return RenderedCharts{}, err
		}
	}
	return out, nil
}

func (c *StatisticsCharts) cached(kind string, data any, render func() (string, error)) (string, error) {
	return c.cache.GetOrRender(kind+":"+c.theme+":"+dataHash(data), render)
}

func (c *StatisticsCharts) renderOverall(percentage float64) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(c.globalOptions("Overall completion")...)
	gauge.AddSeries("Completion", []opts.GaugeData{
		{Name: "Completion", Value: roundTenth(percentage)},
	})
	return renderChart(gauge)
}

func (c *StatisticsCharts) renderByLocale(rows []LocaleCompletion) (string, error) {
	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		labels[i] = row.Locale
		data[i] = opts.BarData{Name: row.Locale, Value: roundTenth(row.Percentage)}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalOptions("Completion by locale")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Completion %", data)
	return renderChart(bar)
}

func (c *StatisticsCharts) renderByFeature(rows []FeatureCompletion) (string, error) {
	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		labels[i] = row.FeatureName
		data[i] = opts.BarData{Name: row.FeatureName, Value: roundTenth(row.Percentage)}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalOptions("Completion by feature")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Completion %", data)
	return renderChart(bar)
}

func (c *StatisticsCharts) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  c.theme,
		Width:  "100%",
		Height: c.height,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
