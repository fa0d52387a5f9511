package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costview/costview-go/internal/types"
)

func sampleReport() *types.CostReport {
	start := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)
	return &types.CostReport{
		FetchedAt:   time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC),
		WindowStart: start,
		WindowEnd:   start.AddDate(0, 0, 2),
		Daily: []types.DailyCost{
			{Date: start, Amount: 1.5},
			{Date: start.AddDate(0, 0, 1), Amount: 0},
			{Date: start.AddDate(0, 0, 2), Amount: 2.5},
		},
		WindowTotal: 4,
		Previous:    types.MonthlyCost{Year: 2026, Month: time.July, Amount: 62},
		Current:     types.MonthlyCost{Year: 2026, Month: time.August, Amount: 56, Partial: true},
		Projection: types.Projection{
			MonthToDate:   56,
			DailyAverage:  2,
			Estimated:     62,
			DaysElapsed:   28,
			DaysInMonth:   31,
			ChangePercent: 0,
			HasPrevious:   true,
		},
		Services: []types.ServiceCost{
			{Service: "Amazon EC2", Amount: 42, Percent: 75},
			{Service: "Amazon S3", Amount: 14, Percent: 25},
		},
	}
}

func TestFormatReport_Table(t *testing.T) {
	formatter := NewFormatter(FormatterOptions{Format: "table", NoColor: true})
	out, err := formatter.FormatReport(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "Daily Costs")
	assert.Contains(t, out, "Month Comparison")
	assert.Contains(t, out, "Projection")
	assert.Contains(t, out, "Cost by Service (Aug 2026)")
	assert.Contains(t, out, "2026-08-26")
	assert.Contains(t, out, "Amazon EC2")
	assert.Contains(t, out, "Jul 2026")
}

func TestFormatReport_JSONRoundTrips(t *testing.T) {
	formatter := NewFormatter(FormatterOptions{Format: "json"})
	out, err := formatter.FormatReport(sampleReport())
	require.NoError(t, err)

	var decoded types.CostReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 4.0, decoded.WindowTotal)
	assert.Len(t, decoded.Services, 2)
}

func TestDailyCSV(t *testing.T) {
	out, err := DailyCSV(sampleReport().Daily)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Cost", lines[0])
	assert.Equal(t, "2026-08-26,1.50", lines[1])
	assert.Equal(t, "2026-08-27,0.00", lines[2])
}

func TestServicesCSV(t *testing.T) {
	out, err := ServicesCSV(sampleReport().Services)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Service,Cost,Percentage", lines[0])
	assert.Equal(t, "Amazon EC2,42.00,75.0%", lines[1])
}

func TestSummaryCSV(t *testing.T) {
	out, err := SummaryCSV(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, out, "Metric,Value")
	assert.Contains(t, out, "Last 3 Days Total,$4.00")
	assert.Contains(t, out, "Previous Month (Jul 2026),$62.00")
	assert.Contains(t, out, "Current Month Estimate (Aug 2026),$62.00")
	assert.Contains(t, out, "Days Elapsed This Month,28")
}

func TestFormatServices_Empty(t *testing.T) {
	formatter := NewTableWriterFormatter(true)
	out := formatter.FormatServices(nil)
	assert.Contains(t, out, "No service breakdown data")
}
