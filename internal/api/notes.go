package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parthasastry/notes-app/internal/errs"
	"github.com/parthasastry/notes-app/internal/identity"
	"github.com/parthasastry/notes-app/internal/note"
)

const (
	maxTags   = 50
	maxTagLen = 128
)

var tagRules = fmt.Sprintf("max=%d,dive,max=%d", maxTags, maxTagLen)

var validate = validator.New()

type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type noteResponse struct {
	Message string    `json:"message,omitempty"`
	Note    note.View `json:"note"`
}

type listResponse struct {
	Notes []note.View `json:"notes"`
	Count int         `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (rt *Router) createNote(ctx context.Context, req Request, _ string) (int, any, error) {
	owner, err := caller(req)
	if err != nil {
		return 0, nil, err
	}

	var body createNoteRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return 0, nil, err
	}
	if err := validateTags(body.Tags); err != nil {
		return 0, nil, err
	}

	n, err := rt.notes.Create(ctx, owner, note.CreateInput{
		Title:   body.Title,
		Content: body.Content,
		Tags:    body.Tags,
	})
	if err != nil {
		return 0, nil, mapNoteError(err)
	}
	return http.StatusCreated, noteResponse{Message: "Note created successfully", Note: n.View()}, nil
}

func (rt *Router) listNotes(ctx context.Context, req Request, _ string) (int, any, error) {
	owner, err := caller(req)
	if err != nil {
		return 0, nil, err
	}

	notes, err := rt.notes.List(ctx, owner)
	if err != nil {
		return 0, nil, mapNoteError(err)
	}

	views := make([]note.View, 0, len(notes))
	for _, n := range notes {
		views = append(views, n.View())
	}
	return http.StatusOK, listResponse{Notes: views, Count: len(views)}, nil
}

func (rt *Router) getNote(ctx context.Context, req Request, noteID string) (int, any, error) {
	owner, err := caller(req)
	if err != nil {
		return 0, nil, err
	}

	n, err := rt.notes.Get(ctx, owner, noteID)
	if err != nil {
		return 0, nil, mapNoteError(err)
	}
	return http.StatusOK, noteResponse{Note: n.View()}, nil
}

func (rt *Router) updateNote(ctx context.Context, req Request, noteID string) (int, any, error) {
	owner, err := caller(req)
	if err != nil {
		return 0, nil, err
	}
	if noteID == "" {
		return 0, nil, mapNoteError(note.ErrMissingID)
	}

	var patch note.Patch
	if err := decodeBody(req.Body, &patch); err != nil {
		return 0, nil, err
	}
	if patch.Tags.Set {
		if err := validateTags(patch.Tags.Value); err != nil {
			return 0, nil, err
		}
	}

	n, err := rt.notes.Update(ctx, owner, noteID, patch)
	if err != nil {
		return 0, nil, mapNoteError(err)
	}
	return http.StatusOK, noteResponse{Message: "Note updated successfully", Note: n.View()}, nil
}

func (rt *Router) deleteNote(ctx context.Context, req Request, noteID string) (int, any, error) {
	owner, err := caller(req)
	if err != nil {
		return 0, nil, err
	}

	if err := rt.notes.Delete(ctx, owner, noteID); err != nil {
		return 0, nil, mapNoteError(err)
	}
	return http.StatusOK, messageResponse{Message: "Note deleted successfully"}, nil
}

func caller(req Request) (string, error) {
	owner, err := identity.Resolve(req.Authorizer)
	if err != nil {
		return "", errs.NewUnauthorizedError("Unauthorized")
	}
	return owner, nil
}

// decodeBody treats a missing body as an empty object.
func decodeBody(body string, v any) error {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return errs.NewBadRequestError("Invalid JSON body", nil)
	}
	return nil
}

// validateTags caps the tag count and the length of each tag. Values are
// stored as sent.
func validateTags(tags []string) error {
	err := validate.Var(tags, tagRules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("each tag must be at most %d characters", maxTagLen)
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("at most %d tags are allowed", maxTags)
		}
		fields = append(fields, errs.FieldError{Field: "tags", Error: msg})
	}
	return errs.NewBadRequestError("Invalid tags", fields)
}

// mapNoteError turns domain errors into client-facing ones. Anything else is
// passed through and reported as a 500 by the router.
func mapNoteError(err error) error {
	switch {
	case errors.Is(err, note.ErrEmptyNote):
		return errs.NewBadRequestError("Title or content is required", nil)
	case errors.Is(err, note.ErrNoChanges):
		return errs.NewBadRequestError("No fields to update", nil)
	case errors.Is(err, note.ErrMissingID):
		return errs.NewBadRequestError("Note ID is required", nil)
	case errors.Is(err, note.ErrNotFound):
		return errs.NewNotFoundError("Note not found")
	}
	return err
}
