package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/costview/costview-go/internal/metrics"
	"github.com/costview/costview-go/internal/output"
	"github.com/costview/costview-go/internal/types"
)

type pageData struct {
	Report     *types.CostReport
	ReportJSON template.JS
	FetchedAt  time.Time
	Error      string
	Hint       string
	Stale      bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{}

	report, err := s.snapshot.Get(r.Context())
	if err != nil {
		metrics.ObserveRefresh("error")
		s.logger.Error("report refresh failed", zap.Error(err))
		data.Error = err.Error()
		data.Hint = types.Hint(err)

		// Keep the last good report on screen, marked stale.
		if last, fetchedAt, ok := s.snapshot.Last(); ok {
			report = last
			data.FetchedAt = fetchedAt
			data.Stale = true
		}
	} else {
		metrics.ObserveRefresh("ok")
		data.FetchedAt = report.FetchedAt
	}

	if report != nil {
		data.Report = report
		raw, err := json.Marshal(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.ReportJSON = template.JS(raw)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("template execution failed", zap.Error(err))
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.snapshot.Get(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, report)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	report, err := s.snapshot.Refresh(r.Context(), true)
	if err != nil {
		metrics.ObserveRefresh("error")
		s.writeError(w, err)
		return
	}
	metrics.ObserveRefresh("ok")
	s.writeJSON(w, report)
}

func (s *Server) handleDailyCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportForDownload(w, r)
	if !ok {
		return
	}
	csv, err := output.DailyCSV(report.Daily)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("aws_daily_costs_%s_%s.csv",
		report.WindowStart.Format("2006-01-02"),
		report.WindowEnd.Format("2006-01-02"))
	s.writeCSV(w, name, csv)
}

func (s *Server) handleServicesCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportForDownload(w, r)
	if !ok {
		return
	}
	csv, err := output.ServicesCSV(report.Services)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("aws_service_costs_%d-%02d.csv", report.Current.Year, report.Current.Month)
	s.writeCSV(w, name, csv)
}

func (s *Server) handleSummaryCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reportForDownload(w, r)
	if !ok {
		return
	}
	csv, err := output.SummaryCSV(report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("aws_cost_summary_%s.csv", time.Now().Format("20060102"))
	s.writeCSV(w, name, csv)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// reportForDownload fetches the current report, falling back to the last good
// snapshot when the refresh fails. Downloads only error out when no report
// has ever been fetched.
func (s *Server) reportForDownload(w http.ResponseWriter, r *http.Request) (*types.CostReport, bool) {
	report, err := s.snapshot.Get(r.Context())
	if err != nil {
		last, _, ok := s.snapshot.Last()
		if !ok {
			s.writeError(w, err)
			return nil, false
		}
		s.logger.Warn("serving stale report for download", zap.Error(err))
		report = last
	}
	return report, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(body))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if types.Hint(err) == "" {
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"hint":  types.Hint(err),
	})
}
