package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/costview/costview-go/internal/types"
)

const DefaultWindowDays = 30

// CostAPI is the query surface the aggregator needs from the billing client.
// End dates are exclusive throughout, matching the Cost Explorer interval.
type CostAPI interface {
	DailyCosts(ctx context.Context, start, end time.Time) ([]types.DailyCost, error)
	MonthlyTotal(ctx context.Context, start, end time.Time) (float64, error)
	CostsByService(ctx context.Context, start, end time.Time) ([]types.ServiceCost, error)
}

// Aggregator turns raw billing records into the report tables. Every method is
// a pure function of the clock and the API responses; nothing is retried and
// nothing is cached here.
type Aggregator struct {
	api    CostAPI
	now    func() time.Time
	window int
}

func New(api CostAPI) *Aggregator {
	return &Aggregator{
		api:    api,
		now:    time.Now,
		window: DefaultWindowDays,
	}
}

// SetClock replaces the time source, used by tests.
func (a *Aggregator) SetClock(now func() time.Time) {
	if now != nil {
		a.now = now
	}
}

// SetWindow changes the rolling window length in days.
func (a *Aggregator) SetWindow(days int) {
	if days > 0 {
		a.window = days
	}
}

// DailyCosts returns exactly one entry per calendar day in
// [today-(window-1), today], ascending. Days the API did not report are
// filled with a zero amount; a fully empty response is an error because it
// cannot be told apart from a broken query.
func (a *Aggregator) DailyCosts(ctx context.Context) ([]types.DailyCost, error) {
	today := a.today()
	start := today.AddDate(0, 0, -(a.window - 1))

	records, err := a.api.DailyCosts(ctx, start, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &types.QueryError{
			Op:   "fetch daily costs",
			Kind: types.ErrDataUnavailable,
			Err:  fmt.Errorf("no records for %s to %s", start.Format("2006-01-02"), today.Format("2006-01-02")),
		}
	}

	byDay := make(map[string]float64, len(records))
	for _, r := range records {
		byDay[r.Date.Format("2006-01-02")] += r.Amount
	}

	costs := make([]types.DailyCost, 0, a.window)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		costs = append(costs, types.DailyCost{
			Date:   day,
			Amount: byDay[day.Format("2006-01-02")],
		})
	}
	return costs, nil
}

// MonthComparison returns the previous month's complete total and the current
// month-to-date total. The current month range is [1st, today] inclusive.
func (a *Aggregator) MonthComparison(ctx context.Context) (previous, current types.MonthlyCost, err error) {
	today := a.today()
	currentStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	previousStart := currentStart.AddDate(0, -1, 0)

	prevAmount, err := a.api.MonthlyTotal(ctx, previousStart, currentStart)
	if err != nil {
		return types.MonthlyCost{}, types.MonthlyCost{}, err
	}
	curAmount, err := a.api.MonthlyTotal(ctx, currentStart, today.AddDate(0, 0, 1))
	if err != nil {
		return types.MonthlyCost{}, types.MonthlyCost{}, err
	}

	previous = types.MonthlyCost{
		Year:   previousStart.Year(),
		Month:  previousStart.Month(),
		Amount: prevAmount,
	}
	current = types.MonthlyCost{
		Year:    currentStart.Year(),
		Month:   currentStart.Month(),
		Amount:  curAmount,
		Partial: true,
	}
	return previous, current, nil
}

// Projection extrapolates the current month-to-date amount linearly to a
// full-month estimate. Days elapsed is the calendar day number, so on the
// first day of a month the divisor is 1 and the estimate is the month-to-date
// amount times the number of days in the month.
func (a *Aggregator) Projection(current types.MonthlyCost) types.Projection {
	today := a.today()
	daysElapsed := today.Day()
	daysInMonth := time.Date(current.Year, current.Month+1, 0, 0, 0, 0, 0, today.Location()).Day()

	dailyAverage := current.Amount / float64(daysElapsed)
	return types.Projection{
		MonthToDate:  current.Amount,
		DailyAverage: dailyAverage,
		Estimated:    dailyAverage * float64(daysInMonth),
		DaysElapsed:  daysElapsed,
		DaysInMonth:  daysInMonth,
	}
}

// ServiceBreakdown returns per-service costs for the given month sorted by
// amount descending. Percentages are computed against the sum of the returned
// amounts, never against a separately fetched total, so they always add up to
// ~100. Zero-amount services are dropped. An empty month yields an empty
// slice, not an error.
func (a *Aggregator) ServiceBreakdown(ctx context.Context, year int, month time.Month) ([]types.ServiceCost, error) {
	today := a.today()
	start := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 1, 0)
	if tomorrow := today.AddDate(0, 0, 1); end.After(tomorrow) {
		end = tomorrow
	}

	records, err := a.api.CostsByService(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var total float64
	costs := make([]types.ServiceCost, 0, len(records))
	for _, r := range records {
		if r.Amount <= 0 {
			continue
		}
		costs = append(costs, r)
		total += r.Amount
	}
	sort.Slice(costs, func(i, j int) bool {
		return costs[i].Amount > costs[j].Amount
	})
	for i := range costs {
		costs[i].Percent = costs[i].Amount / total * 100
	}
	return costs, nil
}

// FetchReport issues the queries sequentially and assembles the full report.
// The first failure aborts; no partial report is ever returned.
func (a *Aggregator) FetchReport(ctx context.Context) (*types.CostReport, error) {
	daily, err := a.DailyCosts(ctx)
	if err != nil {
		return nil, err
	}
	previous, current, err := a.MonthComparison(ctx)
	if err != nil {
		return nil, err
	}
	services, err := a.ServiceBreakdown(ctx, current.Year, current.Month)
	if err != nil {
		return nil, err
	}

	projection := a.Projection(current)
	if previous.Amount > 0 {
		projection.ChangePercent = (projection.Estimated - previous.Amount) / previous.Amount * 100
		projection.HasPrevious = true
	}

	var windowTotal float64
	for _, d := range daily {
		windowTotal += d.Amount
	}

	return &types.CostReport{
		FetchedAt:   a.now(),
		WindowStart: daily[0].Date,
		WindowEnd:   daily[len(daily)-1].Date,
		Daily:       daily,
		WindowTotal: windowTotal,
		Previous:    previous,
		Current:     current,
		Projection:  projection,
		Services:    services,
	}, nil
}

func (a *Aggregator) today() time.Time {
	now := a.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
