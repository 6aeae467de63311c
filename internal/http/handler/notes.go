package handler

import (
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/parthasastry/notes-app/internal/api"
	"github.com/parthasastry/notes-app/internal/auth"
	"github.com/parthasastry/notes-app/internal/errs"
)

const maxBodyBytes = 1 << 20

// NotesHandler forwards every notes request to the core router, the same way
// the Lambda adapter does.
type NotesHandler struct {
	Router *api.Router

	// OmitHeaders are envelope headers left to upstream middleware.
	OmitHeaders []string
}

func (h *NotesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errs.NewBadRequestError("Invalid request body", nil))
		return
	}

	authz, _ := auth.AuthorizerFromContext(r.Context())
	resp := h.Router.Handle(r.Context(), api.Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		PathParams: pathParams(r),
		Body:       string(body),
		Authorizer: authz,
		RequestID:  chimw.GetReqID(r.Context()),
	})
	for _, k := range h.OmitHeaders {
		delete(resp.Headers, k)
	}
	WriteResponse(w, resp)
}

func pathParams(r *http.Request) map[string]string {
	id := chi.URLParam(r, "note_id")
	if id == "" {
		return nil
	}
	if r.URL.RawPath != "" {
		if u, err := url.PathUnescape(id); err == nil {
			id = u
		}
	}
	return map[string]string{"note_id": id}
}

// WriteResponse copies an envelope onto w. Headers already set upstream, such
// as those from the CORS middleware, are kept.
func WriteResponse(w http.ResponseWriter, resp api.Response) {
	for k, v := range resp.Headers {
		if w.Header().Get(k) == "" {
			w.Header().Set(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
