package dashboard

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/costview/costview-go/internal/cache"
	"github.com/costview/costview-go/internal/metrics"
	"github.com/costview/costview-go/internal/types"
)

// Server renders the cost dashboard and the CSV downloads. All handlers read
// through the shared report snapshot; a failed refresh keeps the previous
// report visible next to an error banner instead of blanking the view.
type Server struct {
	addr     string
	logger   *zap.Logger
	snapshot *cache.Snapshot[*types.CostReport]
	router   chi.Router
	tmpl     *template.Template
}

func New(addr string, logger *zap.Logger, snapshot *cache.Snapshot[*types.CostReport]) (*Server, error) {
	tmpl, err := template.New("dashboard").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:     addr,
		logger:   logger,
		snapshot: snapshot,
		tmpl:     tmpl,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/", s.handleIndex)
	r.Get("/api/report", s.handleReport)
	r.Post("/api/refresh", s.handleRefresh)
	r.Get("/download/daily.csv", s.handleDailyCSV)
	r.Get("/download/services.csv", s.handleServicesCSV)
	r.Get("/download/summary.csv", s.handleSummaryCSV)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
