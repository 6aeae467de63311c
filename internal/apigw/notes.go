// Package apigw adapts AWS Lambda events to the notes API and the profile
// service.
package apigw

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"github.com/parthasastry/notes-app/internal/api"
	"github.com/parthasastry/notes-app/internal/identity"
)

// NotesHandler serves both API Gateway REST (payload v1) and HTTP API
// (payload v2) proxy events.
type NotesHandler struct {
	Router *api.Router
}

type payloadVersion struct {
	Version string `json:"version"`
}

func (h *NotesHandler) Handle(ctx context.Context, raw json.RawMessage) (any, error) {
	var pv payloadVersion
	if err := json.Unmarshal(raw, &pv); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	if pv.Version == "2.0" {
		var ev events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("decode http api event: %w", err)
		}
		return h.HandleV2(ctx, ev)
	}

	var ev events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode rest api event: %w", err)
	}
	return h.HandleV1(ctx, ev)
}

func (h *NotesHandler) HandleV1(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := decodeBody(ev.Body, ev.IsBase64Encoded)
	if err != nil {
		return v1Response(api.BadRequest("Invalid request body")), nil
	}

	path := ev.Path
	if path == "" {
		path = ev.Resource
	}

	resp := h.Router.Handle(ctx, api.Request{
		Method:     ev.HTTPMethod,
		Path:       path,
		PathParams: ev.PathParameters,
		Body:       body,
		Authorizer: identity.Authorizer(ev.RequestContext.Authorizer),
		RequestID:  ev.RequestContext.RequestID,
	})
	return v1Response(resp), nil
}

func v1Response(resp api.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

func (h *NotesHandler) HandleV2(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := decodeBody(ev.Body, ev.IsBase64Encoded)
	if err != nil {
		return v2Response(api.BadRequest("Invalid request body")), nil
	}

	resp := h.Router.Handle(ctx, api.Request{
		Method:     ev.RequestContext.HTTP.Method,
		Path:       ev.RawPath,
		PathParams: ev.PathParameters,
		Body:       body,
		Authorizer: v2Authorizer(ev.RequestContext.Authorizer),
		RequestID:  ev.RequestContext.RequestID,
	})
	return v2Response(resp), nil
}

func v2Response(resp api.Response) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// v2Authorizer reshapes HTTP API authorizer output into the layouts the
// identity package reads: JWT claims under jwt.claims, Lambda authorizer
// context as is.
func v2Authorizer(a *events.APIGatewayV2HTTPRequestContextAuthorizerDescription) identity.Authorizer {
	if a == nil {
		return nil
	}
	authz := identity.Authorizer{}
	for k, v := range a.Lambda {
		authz[k] = v
	}
	if a.JWT != nil {
		claims := make(map[string]any, len(a.JWT.Claims))
		for k, v := range a.JWT.Claims {
			claims[k] = v
		}
		authz["jwt"] = map[string]any{"claims": claims}
	}
	return authz
}

func decodeBody(body string, isBase64 bool) (string, error) {
	if !isBase64 || body == "" {
		return body, nil
	}
	b, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", fmt.Errorf("decode base64 body: %w", err)
	}
	return string(b), nil
}
