package sweep

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type rateSeries struct {
	name   string
	k      int
	points [][2]float64
}

// xAxis returns the swept quantity of a scenario: the code length when it
// varies, the error count otherwise
func xAxis(sc Scenario) string {
	if sc.Lengths == LengthsRandom {
		return "n"
	}
	return "e"
}

// Charts builds one page with, for every scenario and field, the success
// rate of each decoder and their difference, with one line per k
func Charts(report *Report) *components.Page {
	page := components.NewPage().SetPageTitle("Reed-Solomon decoder success rates")

	type groupKey struct{ scenario, field string }
	var order []groupKey
	groups := make(map[groupKey][]Row)
	for _, row := range report.Rows {
		key := groupKey{row.Scenario, row.Field}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	for _, key := range order {
		sc, _ := report.Scenario(key.scenario)
		axis := xAxis(sc)
		rows := groups[key]

		page.AddCharts(
			rateChart(fmt.Sprintf("%s %s: unique decoder", key.scenario, key.field), axis, "success rate",
				rateSeriesOf(rows, axis, func(r Row) float64 { return r.UniqueRate })),
			rateChart(fmt.Sprintf("%s %s: list decoder", key.scenario, key.field), axis, "success rate",
				rateSeriesOf(rows, axis, func(r Row) float64 { return r.ListRate })),
			rateChart(fmt.Sprintf("%s %s: unique minus list", key.scenario, key.field), axis, "rate difference",
				rateSeriesOf(rows, axis, func(r Row) float64 { return r.UniqueRate - r.ListRate })),
		)
	}

	// Scenarios with n = k only differ in the error count, so they are
	// also drawn together against e
	for _, field := range fieldsOf(report.Rows) {
		rows := lengthKRows(report, field)
		if len(rows) == 0 {
			continue
		}
		unique := rateSeriesOf(rows, "e", func(r Row) float64 { return r.UniqueRate })
		list := rateSeriesOf(rows, "e", func(r Row) float64 { return r.ListRate })
		for i := range unique {
			unique[i].name = "unique " + unique[i].name
		}
		for i := range list {
			list[i].name = "list " + list[i].name
		}
		page.AddCharts(rateChart(fmt.Sprintf("n = k %s: both decoders", field), "e", "success rate",
			append(unique, list...)))
	}
	return page
}

func fieldsOf(rows []Row) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, row := range rows {
		if !seen[row.Field] {
			seen[row.Field] = true
			fields = append(fields, row.Field)
		}
	}
	return fields
}

// lengthKRows merges the rows of one field from every n = k scenario into
// one row per (k, e), sorted by k then e
func lengthKRows(report *Report, field string) []Row {
	type key struct{ k, e int }
	merged := make(map[key]*Row)
	for _, row := range report.Rows {
		sc, ok := report.Scenario(row.Scenario)
		if !ok || sc.Lengths != LengthsK || row.Field != field {
			continue
		}
		m, ok := merged[key{row.K, row.E}]
		if !ok {
			m = &Row{Field: field, K: row.K, N: row.N, E: row.E}
			merged[key{row.K, row.E}] = m
		}
		m.Runs += row.Runs
		m.Unique += row.Unique
		m.List += row.List
		m.ListInfeasible += row.ListInfeasible
	}

	rows := make([]Row, 0, len(merged))
	for _, m := range merged {
		m.UniqueRate = float64(m.Unique) / float64(m.Runs)
		m.ListRate = float64(m.List) / float64(m.Runs)
		rows = append(rows, *m)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].K != rows[j].K {
			return rows[i].K < rows[j].K
		}
		return rows[i].E < rows[j].E
	})
	return rows
}

// WriteCharts renders the charts of a report as a standalone HTML page
func WriteCharts(report *Report, w io.Writer) error {
	return Charts(report).Render(w)
}

func rateSeriesOf(rows []Row, axis string, rate func(Row) float64) []rateSeries {
	var series []rateSeries
	index := make(map[int]int)
	for _, row := range rows {
		i, ok := index[row.K]
		if !ok {
			i = len(series)
			index[row.K] = i
			series = append(series, rateSeries{name: fmt.Sprintf("k=%d", row.K), k: row.K})
		}
		x := row.N
		if axis == "e" {
			x = row.E
		}
		series[i].points = append(series[i].points, [2]float64{float64(x), rate(row)})
	}
	return series
}

func rateChart(title, xName, yName string, series []rateSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "450px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
	)
	for _, s := range series {
		data := make([]opts.LineData, len(s.points))
		for i, p := range s.points {
			data[i] = opts.LineData{Value: []interface{}{p[0], p[1]}}
		}
		line.AddSeries(s.name, data)
	}
	return line
}
