package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/simaogato/assetboard-backend/internal/usecase/aggregate"
)

// WriteHTML renders the dashboard charts for one aggregation as a
// standalone HTML page
func WriteHTML(w io.Writer, res *aggregate.Result) error {
	dates := make([]string, 0, len(res.Periods))
	netWorth := make([]opts.LineData, 0, len(res.Periods))
	totalAsset := make([]opts.LineData, 0, len(res.Periods))
	change := make([]opts.BarData, 0, len(res.Periods))
	mix := map[string][]opts.BarData{}

	for _, p := range res.Periods {
		dates = append(dates, p.Date)
		netWorth = append(netWorth, opts.LineData{Value: p.NetWorth.InexactFloat64()})
		totalAsset = append(totalAsset, opts.LineData{Value: p.TotalAsset.InexactFloat64()})
		change = append(change, opts.BarData{Value: p.Change.InexactFloat64()})
		mix[aggregate.CategoryCash] = append(mix[aggregate.CategoryCash], opts.BarData{Value: p.PctCash})
		mix[aggregate.CategorySavings] = append(mix[aggregate.CategorySavings], opts.BarData{Value: p.PctSavings})
		mix[aggregate.CategoryStock] = append(mix[aggregate.CategoryStock], opts.BarData{Value: p.PctStock})
		mix[aggregate.CategoryFixed] = append(mix[aggregate.CategoryFixed], opts.BarData{Value: p.PctFixed})
	}

	trend := charts.NewLine()
	trend.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Net Worth", Subtitle: fmt.Sprintf("View: %s", res.View)}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	trend.SetXAxis(dates).
		AddSeries("Net worth", netWorth).
		AddSeries("Total asset", totalAsset)

	changes := charts.NewBar()
	changes.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Change"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	changes.SetXAxis(dates).AddSeries("Change", change)

	shares := charts.NewBar()
	shares.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Asset Mix (%)"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	shares.SetXAxis(dates)
	for _, name := range []string{aggregate.CategoryCash, aggregate.CategorySavings, aggregate.CategoryStock, aggregate.CategoryFixed} {
		shares.AddSeries(name, mix[name], charts.WithBarChartOpts(opts.BarChart{Stack: "mix"}))
	}

	slices := make([]opts.PieData, 0, len(res.Distribution))
	for _, s := range res.Distribution {
		slices = append(slices, opts.PieData{Name: s.Name, Value: s.Value.InexactFloat64()})
	}
	distribution := charts.NewPie()
	distribution.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Distribution", Subtitle: res.Latest.Date}),
	)
	distribution.AddSeries("Distribution", slices)

	page := components.NewPage()
	page.PageTitle = "Asset Dashboard"
	page.AddCharts(trend, changes, shares, distribution)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}
