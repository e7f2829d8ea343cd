package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/report"
	"github.com/addis-care/market-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved analysis runs over HTTP",
	Long:  "Starts a read-only API over the run store: run listings, full results as JSON, and the risk/revenue/opportunity tables as CSV downloads.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst)
		router := newRouter(st, limiter)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// newRouter builds the API router over a run store.
func newRouter(st store.Store, limiter *rate.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))
	r.Use(rateLimit(limiter))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		filter := store.RunFilter{
			Status:      model.RunStatus(req.URL.Query().Get("status")),
			Granularity: model.Granularity(req.URL.Query().Get("granularity")),
			Limit:       50,
		}
		if raw := req.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeJSONError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			filter.Limit = limit
		}

		runs, err := st.ListRuns(req.Context(), filter)
		if err != nil {
			zap.L().Error("list runs", zap.Error(err))
			writeJSONError(w, http.StatusInternalServerError, "list runs failed")
			return
		}

		// Listings carry metadata only; results are fetched per run.
		for i := range runs {
			runs[i].Result = nil
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		run, ok := fetchRun(w, req, st)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	r.Get("/runs/{id}/risk.csv", runCSVHandler(st, report.WriteRiskCSV))
	r.Get("/runs/{id}/revenue.csv", runCSVHandler(st, report.WriteRevenueCSV))
	r.Get("/runs/{id}/opportunity.csv", runCSVHandler(st, report.WriteOpportunityCSV))

	return r
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func runCSVHandler(st store.Store, write func(io.Writer, *model.AnalysisResult) error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		run, ok := fetchRun(w, req, st)
		if !ok {
			return
		}
		if run.Result == nil {
			writeJSONError(w, http.StatusConflict, "run has no result yet")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if err := write(w, run.Result); err != nil {
			zap.L().Error("write csv", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
}

func fetchRun(w http.ResponseWriter, req *http.Request, st store.Store) (*model.Run, bool) {
	run, err := st.GetRun(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "run not found")
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
