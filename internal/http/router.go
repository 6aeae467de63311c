package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/parthasastry/notes-app/internal/api"
	"github.com/parthasastry/notes-app/internal/auth"
	"github.com/parthasastry/notes-app/internal/config"
	"github.com/parthasastry/notes-app/internal/http/handler"
	mw "github.com/parthasastry/notes-app/internal/http/middleware"
	"github.com/parthasastry/notes-app/internal/profile"
)

const allowOrigin = "Access-Control-Allow-Origin"

func NewRouter(cfg config.Config, notes *api.Router, profiles profile.Store, jwtSvc *auth.JWT, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)

	// With configured origins the CORS middleware owns Access-Control-Allow-Origin;
	// the envelope's wildcard would otherwise open the API to every origin.
	headers := api.Headers()
	var omit []string
	if origins := cfg.Origins(); len(origins) > 0 {
		r.Use(mw.CORS(origins, cfg.CORSAllowCredentials))
		omit = []string{allowOrigin}
		delete(headers, allowOrigin)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	notesH := &handler.NotesHandler{Router: notes, OmitHeaders: omit}
	me := &handler.MeHandler{Profiles: profiles, Log: log}

	r.Group(func(r chi.Router) {
		r.Use(mw.Envelope(headers))
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/me", me.Me)

		r.Handle("/notes", notesH)
		r.Handle("/notes/{note_id}", notesH)
		r.Handle("/{stage}/notes", notesH)
		r.Handle("/{stage}/notes/{note_id}", notesH)
	})

	// Unknown paths get the core router's diagnostic 404.
	r.NotFound(mw.Envelope(headers)(notesH).ServeHTTP)

	return r
}
