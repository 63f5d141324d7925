package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// SetupRoutes configures all HTTP routes and returns the router.
func SetupRoutes(handlers *Handlers, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))

	r.Get("/health", handlers.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/timings", handlers.GetTimings)
		r.Get("/calendar/{year}", handlers.GetYearCalendar)
		r.Get("/calendar/{year}/{month}", handlers.GetMonthCalendar)
		r.Get("/hijri", handlers.GetHijri)
		r.Get("/timeline", handlers.GetTimeline)
		r.Get("/sun", handlers.GetSun)
		r.Get("/methods", handlers.GetMethods)
	})

	return r
}
