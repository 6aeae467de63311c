// Package api maps gateway requests onto note operations and shapes every
// outcome into a response envelope.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"

	"github.com/parthasastry/notes-app/internal/errs"
	"github.com/parthasastry/notes-app/internal/note"
)

const resource = "notes"

type handlerFunc func(ctx context.Context, req Request, noteID string) (int, any, error)

// Router is built once per process and shared by all requests.
type Router struct {
	notes *note.Service
	log   zerolog.Logger
}

func NewRouter(notes *note.Service, log zerolog.Logger) *Router {
	return &Router{notes: notes, log: log}
}

// Handle never fails: every error, including a panic in a handler, becomes a
// response envelope.
func (rt *Router) Handle(ctx context.Context, req Request) (resp Response) {
	log := rt.log.With().Str("request_id", req.RequestID).Str("method", req.Method).Str("path", req.Path).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			resp = rt.errorResponse(log, fmt.Errorf("panic: %v", rec))
		}
	}()

	if req.Method == http.MethodOptions {
		return jsonResponse(http.StatusOK, map[string]string{"message": "OK"})
	}

	noteID, ok := resolvePath(req.Path, req.PathParams["note_id"])
	h := rt.route(req.Method, noteID)
	if !ok || h == nil {
		log.Warn().Str("note_id", noteID).Msg("no route matched")
		return jsonResponse(http.StatusNotFound, map[string]string{
			"code":    "NOT_FOUND",
			"error":   "Not found",
			"method":  req.Method,
			"path":    req.Path,
			"note_id": noteID,
		})
	}

	log.Debug().Str("note_id", noteID).Msg("routing")
	status, body, err := h(ctx, req, noteID)
	if err != nil {
		return rt.errorResponse(log.With().Str("note_id", noteID).Logger(), err)
	}
	return jsonResponse(status, body)
}

func (rt *Router) route(method, noteID string) handlerFunc {
	hasID := noteID != ""
	switch {
	case method == http.MethodPost && !hasID:
		return rt.createNote
	case method == http.MethodGet && !hasID:
		return rt.listNotes
	case method == http.MethodGet && hasID:
		return rt.getNote
	case method == http.MethodPut && hasID:
		return rt.updateNote
	case method == http.MethodDelete && hasID:
		return rt.deleteNote
	}
	return nil
}

func (rt *Router) errorResponse(log zerolog.Logger, err error) Response {
	var he *errs.HTTPError
	if errors.As(err, &he) {
		log.Warn().Int("status", he.Status).Str("error", he.Message).Msg("request rejected")
		return jsonResponse(he.Status, he)
	}
	log.Error().Err(err).Msg("request failed")
	ise := errs.NewInternalServerError()
	return jsonResponse(ise.Status, ise)
}

// resolvePath reports whether path addresses the notes resource, optionally
// behind one stage segment (/notes, /prod/notes, /notes/{id}, /prod/notes/{id}).
// paramID is the gateway's note_id path parameter; without it the id is taken
// from the trailing path segment.
func resolvePath(path, paramID string) (string, bool) {
	segs := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	n := len(segs)

	isItem := n >= 2 && n <= 3 && segs[n-2] == resource
	isCollection := n >= 1 && n <= 2 && segs[n-1] == resource

	// Without a path parameter, /notes/notes reads as the collection behind a
	// "notes" stage. Generated ids never collide with the resource name.
	if paramID != "" {
		if isItem {
			return paramID, true
		}
		return paramID, false
	}
	if isCollection {
		return "", true
	}
	if isItem {
		id, err := url.PathUnescape(segs[n-1])
		if err != nil || id == "" {
			return "", false
		}
		return id, true
	}
	return "", false
}
