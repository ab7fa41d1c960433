// Package httpx exposes the report pipeline over HTTP for dashboards that
// poll instead of shelling out.
package httpx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/funnelcast/funnelcast/internal/engine"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/pacing"
	"github.com/funnelcast/funnelcast/internal/service"
)

// NewRouter builds the HTTP surface. The run history may be nil when the
// server runs without persistence.
func NewRouter(log *slog.Logger, eng *engine.ReportEngine, goals service.GoalStore, history service.RunHistory, metrics *Metrics, reg *prometheus.Registry) http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestID)
	mux.Use(Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	run := func(w http.ResponseWriter, r *http.Request) (*model.Report, bool) {
		rng, err := parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}

		start := time.Now()
		report, err := eng.Run(r.Context(), engine.RunOptions{
			Range:  rng,
			Closer: r.URL.Query().Get("closer"),
		})
		if err != nil {
			metrics.ReportFailures.Inc()
			http.Error(w, err.Error(), http.StatusBadGateway)
			return nil, false
		}
		metrics.ReportRuns.Inc()
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		metrics.SourceWarnings.Add(float64(len(report.Warnings)))
		return report, true
	}

	mux.Get("/kpi/summary", func(w http.ResponseWriter, r *http.Request) {
		if report, ok := run(w, r); ok {
			writeJSON(w, report)
		}
	})

	mux.Get("/kpi/closers", func(w http.ResponseWriter, r *http.Request) {
		if report, ok := run(w, r); ok {
			writeJSON(w, report.Closers)
		}
	})

	mux.Get("/kpi/funnel", func(w http.ResponseWriter, r *http.Request) {
		if report, ok := run(w, r); ok {
			writeJSON(w, report.Funnel)
		}
	})

	mux.Get("/kpi/daily", func(w http.ResponseWriter, r *http.Request) {
		if report, ok := run(w, r); ok {
			writeJSON(w, report.Daily)
		}
	})

	mux.Get("/kpi/pacing", func(w http.ResponseWriter, r *http.Request) {
		if report, ok := run(w, r); ok {
			writeJSON(w, map[string]any{
				"revenue": report.Revenue,
				"budget":  report.Budget,
			})
		}
	})

	mux.Get("/lead", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			http.Error(w, "email query parameter required", http.StatusBadRequest)
			return
		}
		journey, err := eng.LeadLookup(r.Context(), email)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if !journey.Found() {
			http.Error(w, "no record of this email in any source", http.StatusNotFound)
			return
		}
		writeJSON(w, journey)
	})

	mux.Get("/customers", func(w http.ResponseWriter, r *http.Request) {
		ranking, err := eng.Customers(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, ranking)
	})

	mux.Post("/plan", func(w http.ResponseWriter, r *http.Request) {
		var in pacing.PlanInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad plan input: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, pacing.Plan(in))
	})

	mux.Get("/goals", func(w http.ResponseWriter, r *http.Request) {
		g, err := goals.GetGoals(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, g)
	})

	mux.Put("/goals", func(w http.ResponseWriter, r *http.Request) {
		var g model.GoalConfig
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, "bad goals: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := g.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := goals.SaveGoals(r.Context(), g); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.Get("/runs", func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			http.Error(w, "run history disabled", http.StatusNotFound)
			return
		}
		limit := 20
		if q := r.URL.Query().Get("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n <= 0 {
				http.Error(w, "bad limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		runs, err := history.ListRuns(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, runs)
	})

	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

// parseRange reads start/end query params, defaulting to the current month.
func parseRange(r *http.Request) (model.DateRange, error) {
	now := time.Now().UTC()
	rng := model.DateRange{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC),
	}

	if q := r.URL.Query().Get("start"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("bad start date, want YYYY-MM-DD")
		}
		rng.Start = t
	}
	if q := r.URL.Query().Get("end"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("bad end date, want YYYY-MM-DD")
		}
		rng.End = t
	}
	if rng.Start.After(rng.End) {
		return model.DateRange{}, fmt.Errorf("start date is after end date")
	}
	return rng, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}
