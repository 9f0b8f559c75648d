package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trilhaapi/tarefa-api/internal/api"
	apiMiddleware "github.com/trilhaapi/tarefa-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.taskService, app.logger)
	cache := app.responseCache

	r.Route("/Tarefa", func(r chi.Router) {
		r.With(cache.Cacheable("page", "pageSize")).Get("/ObterTodos", taskHandler.GetAll)
		r.With(cache.Cacheable("data")).Get("/ObterPorData", taskHandler.GetByDate)
		r.With(cache.Cacheable("status")).Get("/ObterPorStatus", taskHandler.GetByStatus)
		r.Get("/ObterPorTitulo", taskHandler.GetByTitle)
		r.Get("/{id}", taskHandler.GetByID)

		// Any successful write makes every cached read stale.
		r.Group(func(r chi.Router) {
			r.Use(cache.InvalidateOnSuccess)
			r.Post("/", taskHandler.Create)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
