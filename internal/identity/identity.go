// Package identity resolves the caller's owner id from an authorizer context
// whose claims the gateway has already verified.
package identity

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrUnauthenticated = errors.New("user email not found in request context")

// Authorizer is the gateway's authorizer context, e.g.
//
//	{"claims": {"email": "...", "cognito:username": "..."}}
//	{"jwt": {"claims": {"email": "..."}}}
type Authorizer = map[string]any

// Strategy looks for the owner id in one claims layout. It returns "" when the
// layout does not apply.
type Strategy func(Authorizer) string

// Strategies are tried in order; the first non-empty result wins.
var Strategies = []Strategy{
	EmailClaim,
	UsernameClaim,
	JWTEmailClaim,
}

var validate = validator.New()

// Resolve returns the owner id for the caller.
func Resolve(authz Authorizer) (string, error) {
	for _, s := range Strategies {
		if id := s(authz); id != "" {
			return id, nil
		}
	}
	return "", ErrUnauthenticated
}

// EmailClaim reads claims.email.
func EmailClaim(authz Authorizer) string {
	return str(lookup(authz, "claims", "email"))
}

// UsernameClaim reads claims["cognito:username"] when it is an email address,
// which is the case for pools that sign users in by email.
func UsernameClaim(authz Authorizer) string {
	v := str(lookup(authz, "claims", "cognito:username"))
	if v == "" || validate.Var(v, "required,email") != nil {
		return ""
	}
	return v
}

// JWTEmailClaim reads jwt.claims.email (HTTP API JWT authorizers).
func JWTEmailClaim(authz Authorizer) string {
	return str(lookup(authz, "jwt", "claims", "email"))
}

func lookup(v any, path ...string) any {
	for _, k := range path {
		switch m := v.(type) {
		case map[string]any:
			v = m[k]
		case map[string]string:
			s, ok := m[k]
			if !ok {
				return nil
			}
			v = s
		default:
			return nil
		}
	}
	return v
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
