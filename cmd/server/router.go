package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/seedstage/mentorship-api/internal/api"
	apimiddleware "github.com/seedstage/mentorship-api/internal/api/middleware"
)

// setupRouter builds the chi router with middleware and the mentorship
// lifecycle routes. All /api routes require an authenticated actor.
func (app *application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	actorMiddleware := apimiddleware.NewActorMiddleware(app.config.Auth.JWTSecret)
	mentorshipHandler := api.NewMentorshipHandler(app.mentorshipService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(actorMiddleware.Authenticate)

			r.Post("/requests", mentorshipHandler.CreateRequest)
			r.Get("/requests/{id}", mentorshipHandler.GetRequest)
			r.Post("/requests/{id}/matching", mentorshipHandler.RunMatching)
			r.Post("/requests/{id}/select", mentorshipHandler.SelectMentor)
			r.Post("/requests/{id}/sessions", mentorshipHandler.ScheduleSession)
			r.Post("/requests/{id}/complete", mentorshipHandler.CompleteRequest)
			r.Post("/requests/{id}/cancel", mentorshipHandler.CancelRequest)
			r.Post("/sessions/{id}/feedback", mentorshipHandler.SubmitFeedback)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
