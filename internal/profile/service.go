package profile

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Confirmation is what the identity provider hands over after a signup is
// confirmed.
type Confirmation struct {
	UserName   string
	Attributes map[string]string
}

type Service struct {
	Store Store
	Now   func() time.Time
}

// Confirm creates the profile for a confirmed signup. It reports whether a new
// record was written. An existing profile is not an error.
func (s *Service) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	attrs := c.Attributes
	sub := attrs["sub"]
	if sub == "" {
		sub = c.UserName
	}
	if len(attrs) == 0 || sub == "" {
		return false, nil
	}

	email := strings.TrimSpace(attrs["email"])
	if email == "" {
		return false, ErrMissingEmail
	}

	given := attrs["given_name"]
	family := attrs["family_name"]
	name := strings.TrimSpace(given + " " + family)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	err := s.Store.Create(ctx, Profile{
		Email:         email,
		CognitoSub:    sub,
		Name:          name,
		GivenName:     given,
		FamilyName:    family,
		AccountStatus: StatusActive,
		LastLogin:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, ErrExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
