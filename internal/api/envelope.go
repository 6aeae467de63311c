package api

import (
	"encoding/json"
	"net/http"

	"github.com/parthasastry/notes-app/internal/errs"
	"github.com/parthasastry/notes-app/internal/identity"
)

// Request is what a gateway forwards after it has verified the caller's token.
type Request struct {
	Method     string
	Path       string
	PathParams map[string]string
	Body       string
	Authorizer identity.Authorizer
	RequestID  string
}

// Response is handed back to the gateway as is.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Headers is set on every response so a browser client can read any outcome.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// BadRequest is for adapters that reject a request before it reaches the
// router, e.g. an undecodable body.
func BadRequest(message string) Response {
	return jsonResponse(http.StatusBadRequest, errs.NewBadRequestError(message, nil))
}

const fallbackBody = `{"code":"INTERNAL_SERVER_ERROR","error":"Internal server error"}`

func jsonResponse(status int, body any) Response {
	b, err := json.Marshal(body)
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Headers: Headers(), Body: fallbackBody}
	}
	return Response{StatusCode: status, Headers: Headers(), Body: string(b)}
}
