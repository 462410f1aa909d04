// Package api serves the family data over a JSON HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/logger"
	"github.com/julianstephens/habitus/internal/metrics"
)

type API struct {
	Service *app.Service
	Metrics *metrics.Metrics
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(a.observe)

	r.Get("/health", a.handleHealth)
	if a.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	}

	r.Route("/families", func(r chi.Router) {
		r.Get("/", a.handleListFamilies)
		r.Post("/", a.handleCreateFamily)

		r.Route("/{familyID}", func(r chi.Router) {
			r.Get("/", a.handleGetFamily)
			r.Get("/audit", a.handleAudit)

			r.Route("/children", func(r chi.Router) {
				r.Get("/", a.handleListChildren)
				r.Post("/", a.handleCreateChild)

				r.Route("/{childID}", func(r chi.Router) {
					r.Get("/", a.handleGetChild)
					r.Patch("/", a.handleUpdateChild)
					r.Delete("/", a.handleDeleteChild)
					r.Get("/due", a.handleDue)
					r.Get("/week", a.handleWeek)
					r.Get("/stars", a.handleStarsEarned)

					r.Post("/habits", a.handleAddHabit)
					r.Put("/habits/{habitID}", a.handleUpdateHabit)
					r.Delete("/habits/{habitID}", a.handleDeleteHabit)
					r.Post("/habits/{habitID}/{action}", a.handleHabitAction)

					r.Get("/rewards/{rewardID}/availability", a.handleAvailability)
					r.Post("/rewards/{rewardID}/redeem", a.handleRedeem)
				})
			})

			r.Post("/habits/assign", a.handleAssignHabit)

			r.Route("/rewards", func(r chi.Router) {
				r.Get("/", a.handleListRewards)
				r.Post("/", a.handleCreateReward)
				r.Put("/{rewardID}", a.handleUpdateReward)
				r.Delete("/{rewardID}", a.handleDeleteReward)
				r.Post("/{rewardID}/restore", a.handleRestoreReward)
			})

			r.Get("/redemptions", a.handleListRedemptions)
			r.Post("/redemptions/{redemptionID}/delivery", a.handleToggleDelivery)
		})
	})

	return r
}

// observe logs each request and records it under its route pattern so
// metrics do not explode on IDs.
func (a *API) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		a.Metrics.ObserveRequest(r.Method, route, status, elapsed)
		logger.Debug("HTTP request", "method", r.Method, "route", route, "status", status, "elapsed", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}
