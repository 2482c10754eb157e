package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/maxpoletaev/kivi-group/api/handler"
	"github.com/maxpoletaev/kivi-group/internal/telemetry"
)

func CreateRouter(registry handler.Registry) *chi.Mux {
	r := chi.NewRouter()

	r.Route("/cluster", func(r chi.Router) {
		handler.NewMembersHandler(registry).Register(r)
		handler.NewViewHandler(registry).Register(r)
	})

	r.Handle("/metrics", telemetry.MetricsHandler())

	return r
}
