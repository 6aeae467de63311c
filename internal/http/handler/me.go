package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/parthasastry/notes-app/internal/auth"
	"github.com/parthasastry/notes-app/internal/errs"
	"github.com/parthasastry/notes-app/internal/identity"
	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/profile"
)

type MeHandler struct {
	Profiles profile.Store
	Log      zerolog.Logger
}

type profileView struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	GivenName     string  `json:"given_name"`
	FamilyName    string  `json:"family_name"`
	AccountStatus string  `json:"account_status"`
	NotesCount    int     `json:"notes_count"`
	LastNoteDate  *string `json:"last_note_date"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type meResponse struct {
	Email   string       `json:"email"`
	Profile *profileView `json:"profile"`
}

// Me reports who the caller is and, once signup has been confirmed, their
// profile. A caller without a profile gets "profile": null.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	authz, _ := auth.AuthorizerFromContext(r.Context())
	email, err := identity.Resolve(authz)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errs.NewUnauthorizedError("Unauthorized"))
		return
	}

	resp := meResponse{Email: email}
	p, err := h.Profiles.Get(r.Context(), email)
	switch {
	case err == nil:
		resp.Profile = newProfileView(p)
	case errors.Is(err, profile.ErrNotFound):
	default:
		h.Log.Error().Err(err).Str("email", email).Msg("load profile")
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func newProfileView(p profile.Profile) *profileView {
	v := &profileView{
		Email:         p.Email,
		Name:          p.Name,
		GivenName:     p.GivenName,
		FamilyName:    p.FamilyName,
		AccountStatus: p.AccountStatus,
		NotesCount:    p.NotesCount,
		CreatedAt:     note.FormatTime(p.CreatedAt),
		UpdatedAt:     note.FormatTime(p.UpdatedAt),
	}
	if p.LastNoteDate != nil {
		s := note.FormatTime(*p.LastNoteDate)
		v.LastNoteDate = &s
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
