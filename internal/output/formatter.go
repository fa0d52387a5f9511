package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/costview/costview-go/internal/types"
)

type Formatter struct {
	options FormatterOptions
}

type FormatterOptions struct {
	Format  string // "table", "json", "csv"
	NoColor bool
}

func NewFormatter(opts FormatterOptions) *Formatter {
	return &Formatter{options: opts}
}

func (f *Formatter) FormatReport(report *types.CostReport) (string, error) {
	switch f.options.Format {
	case "json":
		return f.formatJSON(report)
	case "csv":
		return SummaryCSV(report)
	default:
		tableFormatter := NewTableWriterFormatter(f.options.NoColor)
		return tableFormatter.FormatReport(report), nil
	}
}

func (f *Formatter) formatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// DailyCSV renders the rolling-window daily costs, one row per day.
func DailyCSV(daily []types.DailyCost) (string, error) {
	rows := [][]string{{"Date", "Cost"}}
	for _, d := range daily {
		rows = append(rows, []string{d.Date.Format("2006-01-02"), fmt.Sprintf("%.2f", d.Amount)})
	}
	return writeCSV(rows)
}

// ServicesCSV renders the per-service breakdown with percentage shares.
func ServicesCSV(services []types.ServiceCost) (string, error) {
	rows := [][]string{{"Service", "Cost", "Percentage"}}
	for _, s := range services {
		rows = append(rows, []string{
			s.Service,
			fmt.Sprintf("%.2f", s.Amount),
			fmt.Sprintf("%.1f%%", s.Percent),
		})
	}
	return writeCSV(rows)
}

// SummaryCSV renders the headline metrics as Metric,Value pairs.
func SummaryCSV(report *types.CostReport) (string, error) {
	p := report.Projection
	rows := [][]string{
		{"Metric", "Value"},
		{fmt.Sprintf("Last %d Days Total", len(report.Daily)), fmt.Sprintf("$%.2f", report.WindowTotal)},
		{fmt.Sprintf("Previous Month (%s)", report.Previous.Label()), fmt.Sprintf("$%.2f", report.Previous.Amount)},
		{fmt.Sprintf("Current Month To Date (%s)", report.Current.Label()), fmt.Sprintf("$%.2f", report.Current.Amount)},
		{fmt.Sprintf("Current Month Estimate (%s)", report.Current.Label()), fmt.Sprintf("$%.2f", p.Estimated)},
		{fmt.Sprintf("Daily Average (Last %d Days)", len(report.Daily)), fmt.Sprintf("$%.2f", report.WindowAverage())},
		{"Daily Average (Current Month)", fmt.Sprintf("$%.2f", p.DailyAverage)},
		{"Days Elapsed This Month", fmt.Sprintf("%d", p.DaysElapsed)},
		{"Days in Current Month", fmt.Sprintf("%d", p.DaysInMonth)},
		{"Report Generated", report.FetchedAt.Format(time.RFC3339)},
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
