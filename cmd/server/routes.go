package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", app.handleHealth)
	r.Get("/ws", app.authenticate(app.handleWebSocket))

	r.Route("/match", func(r chi.Router) {
		r.Post("/create", app.authenticate(app.handleMatchCreate))
		r.Post("/join", app.authenticate(app.handleMatchJoin))
	})

	return r
}
