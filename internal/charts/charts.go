// Package charts renders the dashboard visualizations to PNG: a pie of
// expense totals per category and a bar chart of the income/expense/
// savings rollup. Rendering happens server-side so the UI only ever
// embeds static images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"budgetbuddy/internal/core"
)

// palette cycles over pie slices; picked to stay readable on white.
var palette = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("dc2626"), // red-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("7c3aed"), // violet-600
	drawing.ColorFromHex("0891b2"), // cyan-600
	drawing.ColorFromHex("9ca3af"), // gray-400
}

// RenderCategoryPie renders expense totals per category as a PNG pie
// chart. Returns an error when there is nothing to draw; the caller
// decides how to present an empty ledger.
func RenderCategoryPie(totals []core.CategoryAmount) ([]byte, error) {
	values := make([]chart.Value, 0, len(totals))
	for i, ca := range totals {
		if ca.Amount.Cents <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", ca.Name, ca.Amount),
			Value: ca.Amount.Float64(),
			Style: chart.Style{
				FillColor: palette[i%len(palette)],
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no expense categories to chart")
	}

	graph := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  520,
		Height: 420,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("pie chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSummaryBar renders the income/expense/savings totals as a PNG bar
// chart. Income is green, expense red, savings blue; negative savings is
// drawn as a zero-height bar, matching the dashboard's original behavior.
func RenderSummaryBar(s core.Summary) ([]byte, error) {
	if s.Income.IsZero() && s.Expense.IsZero() {
		return nil, fmt.Errorf("no transactions to chart")
	}

	savings := s.Savings.Float64()
	if savings < 0 {
		savings = 0
	}

	graph := chart.BarChart{
		Title:    "Income vs Expense vs Savings",
		Width:    520,
		Height:   420,
		BarWidth: 90,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.Style{},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Bars: []chart.Value{
			{
				Label: "Income",
				Value: s.Income.Float64(),
				Style: chart.Style{FillColor: drawing.ColorFromHex("16a34a")},
			},
			{
				Label: "Expense",
				Value: s.Expense.Float64(),
				Style: chart.Style{FillColor: drawing.ColorFromHex("dc2626")},
			},
			{
				Label: "Savings",
				Value: savings,
				Style: chart.Style{FillColor: drawing.ColorFromHex("2563eb")},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("bar chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
