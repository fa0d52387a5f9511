package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/costview/costview-go/internal/types"
)

// TableWriterFormatter renders the report sections as bordered tables.
type TableWriterFormatter struct {
	noColor bool
}

func NewTableWriterFormatter(noColor bool) *TableWriterFormatter {
	return &TableWriterFormatter{noColor: noColor}
}

// FormatReport renders all four sections: daily costs, month comparison,
// projection, and the service breakdown.
func (f *TableWriterFormatter) FormatReport(report *types.CostReport) string {
	var output strings.Builder

	title := fmt.Sprintf("AWS Cost Report (%s to %s)",
		report.WindowStart.Format("2006-01-02"),
		report.WindowEnd.Format("2006-01-02"))
	output.WriteString("\n")
	output.WriteString(f.titleStyle().Render(title))
	output.WriteString("\n\n")

	output.WriteString(f.sectionStyle().Render("Daily Costs"))
	output.WriteString("\n")
	output.WriteString(f.FormatDaily(report.Daily))
	output.WriteString("\n")

	output.WriteString(f.sectionStyle().Render("Month Comparison"))
	output.WriteString("\n")
	output.WriteString(f.FormatMonthComparison(report))
	output.WriteString("\n")

	output.WriteString(f.sectionStyle().Render("Projection"))
	output.WriteString("\n")
	output.WriteString(f.FormatProjection(report))
	output.WriteString("\n")

	output.WriteString(f.sectionStyle().Render(fmt.Sprintf("Cost by Service (%s)", report.Current.Label())))
	output.WriteString("\n")
	output.WriteString(f.FormatServices(report.Services))

	return output.String()
}

// FormatDaily renders the daily cost table with a total and per-day average.
func (f *TableWriterFormatter) FormatDaily(daily []types.DailyCost) string {
	table, buf := f.newTable()
	table.Header([]string{"Date", "Cost (USD)"})

	var total float64
	for _, d := range daily {
		total += d.Amount
		table.Append([]string{
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("$%.2f", d.Amount),
		})
	}

	table.Footer([]string{
		"Total",
		fmt.Sprintf("$%.2f", total),
	})

	table.Render()
	output := buf.String()
	if len(daily) > 0 {
		output += fmt.Sprintf("Average per day: $%.2f\n", total/float64(len(daily)))
	}
	return output
}

func (f *TableWriterFormatter) FormatMonthComparison(report *types.CostReport) string {
	table, buf := f.newTable()
	table.Header([]string{"Month", "Range", "Cost (USD)"})

	table.Append([]string{
		report.Previous.Label(),
		"complete",
		fmt.Sprintf("$%.2f", report.Previous.Amount),
	})
	table.Append([]string{
		report.Current.Label(),
		fmt.Sprintf("to date (%d/%d days)", report.Projection.DaysElapsed, report.Projection.DaysInMonth),
		fmt.Sprintf("$%.2f", report.Current.Amount),
	})

	table.Render()
	return buf.String()
}

func (f *TableWriterFormatter) FormatProjection(report *types.CostReport) string {
	p := report.Projection

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Month to date:      $%.2f (%d of %d days)\n", p.MonthToDate, p.DaysElapsed, p.DaysInMonth))
	output.WriteString(fmt.Sprintf("Daily average:      $%.2f\n", p.DailyAverage))
	output.WriteString(fmt.Sprintf("Estimated total:    $%.2f\n", p.Estimated))
	if p.HasPrevious {
		output.WriteString(fmt.Sprintf("Change vs %s: %+.1f%%\n", report.Previous.Label(), p.ChangePercent))
	} else {
		output.WriteString("No previous month data for comparison\n")
	}
	return output.String()
}

func (f *TableWriterFormatter) FormatServices(services []types.ServiceCost) string {
	if len(services) == 0 {
		return "No service breakdown data available for this period.\n"
	}

	table, buf := f.newTable()
	table.Header([]string{"Service", "Cost (USD)", "%"})

	var total float64
	for _, s := range services {
		total += s.Amount
		table.Append([]string{
			s.Service,
			fmt.Sprintf("$%.2f", s.Amount),
			fmt.Sprintf("%.1f%%", s.Percent),
		})
	}

	table.Footer([]string{
		"Total",
		fmt.Sprintf("$%.2f", total),
		"100.0%",
	})

	table.Render()
	return buf.String()
}

func (f *TableWriterFormatter) newTable() (*tablewriter.Table, *bytes.Buffer) {
	var buf bytes.Buffer
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	return table, &buf
}

func (f *TableWriterFormatter) titleStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	if !f.noColor {
		style = style.Foreground(lipgloss.Color("205")).BorderForeground(lipgloss.Color("240"))
	}
	return style
}

func (f *TableWriterFormatter) sectionStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if !f.noColor {
		style = style.Foreground(lipgloss.Color("36"))
	}
	return style
}
