package apigw

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/parthasastry/notes-app/internal/profile"
)

// PostConfirmationHandler records a profile after a Cognito signup is
// confirmed. It always hands the event back: a failure here must not block
// the user's signup.
type PostConfirmationHandler struct {
	Profiles *profile.Service
	Log      zerolog.Logger
}

func (h *PostConfirmationHandler) Handle(ctx context.Context, ev events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
	log := h.Log.With().
		Str("trigger", ev.TriggerSource).
		Str("user_pool_id", ev.UserPoolID).
		Str("user_name", ev.UserName).
		Logger()

	created, err := h.Profiles.Confirm(ctx, profile.Confirmation{
		UserName:   ev.UserName,
		Attributes: ev.Request.UserAttributes,
	})
	switch {
	case err != nil:
		log.Error().Err(err).Msg("create profile")
	case created:
		log.Info().Msg("profile created")
	default:
		log.Info().Msg("profile not created")
	}
	return ev, nil
}
