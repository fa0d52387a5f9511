package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/costview/costview-go/internal/cache"
	"github.com/costview/costview-go/internal/types"
)

func sampleReport() *types.CostReport {
	start := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC)
	return &types.CostReport{
		FetchedAt:   time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC),
		WindowStart: start,
		WindowEnd:   start.AddDate(0, 0, 1),
		Daily: []types.DailyCost{
			{Date: start, Amount: 1},
			{Date: start.AddDate(0, 0, 1), Amount: 2},
		},
		WindowTotal: 3,
		Previous:    types.MonthlyCost{Year: 2026, Month: time.July, Amount: 62},
		Current:     types.MonthlyCost{Year: 2026, Month: time.August, Amount: 56, Partial: true},
		Projection:  types.Projection{MonthToDate: 56, DailyAverage: 2, Estimated: 62, DaysElapsed: 28, DaysInMonth: 31},
		Services:    []types.ServiceCost{{Service: "Amazon EC2", Amount: 56, Percent: 100}},
	}
}

func newTestServer(t *testing.T, fetch cache.Fetch[*types.CostReport]) *Server {
	t.Helper()
	snapshot := cache.New(time.Hour, fetch)
	server, err := New(":0", zap.NewNop(), snapshot)
	require.NoError(t, err)
	return server
}

func TestHandleReport_JSON(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return sampleReport(), nil
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report types.CostReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3.0, report.WindowTotal)
}

func TestHandleReport_UsesCacheWithinTTL(t *testing.T) {
	fetches := 0
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		fetches++
		return sampleReport(), nil
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, fetches)
}

func TestHandleRefresh_ForcesFetch(t *testing.T) {
	fetches := 0
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		fetches++
		return sampleReport(), nil
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 2, fetches)
}

func TestHandleIndex_RendersReport(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return sampleReport(), nil
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "AWS Cost Dashboard")
	assert.Contains(t, body, "Amazon EC2")
	assert.Contains(t, body, "/download/daily.csv")
	assert.NotContains(t, body, `class="banner"`)
}

func TestHandleIndex_ErrorKeepsLastReportVisible(t *testing.T) {
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	fail := false
	snapshot := cache.New(5*time.Minute, func(ctx context.Context) (*types.CostReport, error) {
		if fail {
			return nil, &types.QueryError{Op: "fetch daily costs", Kind: types.ErrPermissionDenied, Err: assert.AnError}
		}
		return sampleReport(), nil
	})
	snapshot.SetClock(func() time.Time { return now })

	server, err := New(":0", zap.NewNop(), snapshot)
	require.NoError(t, err)

	// Prime the snapshot, then expire it with the fetch failing.
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	fail = true
	now = now.Add(6 * time.Minute)

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="banner"`)
	assert.Contains(t, body, "(stale)")
	assert.Contains(t, body, "Amazon EC2", "previous report stays visible")
}

func TestHandleIndex_ErrorWithoutSnapshotShowsHint(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return nil, &types.QueryError{Op: "fetch daily costs", Kind: types.ErrServiceDisabled, Err: assert.AnError}
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "fetch daily costs")
	assert.Contains(t, body, "Enable Cost Explorer")
}

func TestDownloads_CSVHeaders(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return sampleReport(), nil
	})

	testCases := []struct {
		path     string
		contains string
	}{
		{"/download/daily.csv", "Date,Cost"},
		{"/download/services.csv", "Service,Cost,Percentage"},
		{"/download/summary.csv", "Metric,Value"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
			assert.Contains(t, rec.Body.String(), tc.contains)
		})
	}
}

func TestDownloads_ErrorWithoutSnapshotFails(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return nil, &types.QueryError{Op: "fetch daily costs", Kind: types.ErrRemoteService, Err: assert.AnError}
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/daily.csv", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*types.CostReport, error) {
		return sampleReport(), nil
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
