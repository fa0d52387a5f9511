package types

import (
	"time"
)

// DailyCost is the spend for one calendar day.
type DailyCost struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

type MonthlyCost struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Amount float64    `json:"amount"`
	// Partial marks a month-to-date value rather than a complete month.
	Partial bool `json:"partial,omitempty"`
}

// Label returns the month in "Jan 2006" form for display.
func (m MonthlyCost) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

type ServiceCost struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Projection is the linear month-end estimate derived from month-to-date spend:
// (month-to-date / days elapsed) * days in month. DaysElapsed is the calendar
// day number and is therefore always >= 1, even at the first instant of a month.
type Projection struct {
	MonthToDate  float64 `json:"month_to_date"`
	DailyAverage float64 `json:"daily_average"`
	Estimated    float64 `json:"estimated"`
	DaysElapsed  int     `json:"days_elapsed"`
	DaysInMonth  int     `json:"days_in_month"`
	// ChangePercent compares Estimated against the previous month's total.
	// Only meaningful when HasPrevious is true.
	ChangePercent float64 `json:"change_percent,omitempty"`
	HasPrevious   bool    `json:"has_previous,omitempty"`
}

// CostReport bundles the four data sets rendered by the CLI and the dashboard.
type CostReport struct {
	FetchedAt   time.Time     `json:"fetched_at"`
	WindowStart time.Time     `json:"window_start"`
	WindowEnd   time.Time     `json:"window_end"`
	Daily       []DailyCost   `json:"daily"`
	WindowTotal float64       `json:"window_total"`
	Previous    MonthlyCost   `json:"previous_month"`
	Current     MonthlyCost   `json:"current_month"`
	Projection  Projection    `json:"projection"`
	Services    []ServiceCost `json:"services"`
}

// WindowAverage is the per-day average over the rolling window.
func (r *CostReport) WindowAverage() float64 {
	if len(r.Daily) == 0 {
		return 0
	}
	return r.WindowTotal / float64(len(r.Daily))
}
