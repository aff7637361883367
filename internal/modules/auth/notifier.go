package auth

import (
	"context"

	"github.com/rs/zerolog"
)

// LogResetNotifier writes reset tokens to the log. The token itself is only
// emitted at debug level.
type LogResetNotifier struct {
	log zerolog.Logger
}

func NewLogResetNotifier(log zerolog.Logger) *LogResetNotifier {
	return &LogResetNotifier{log: log}
}

func (n *LogResetNotifier) SendPasswordReset(_ context.Context, email, token string) error {
	n.log.Info().Str("email", email).Msg("password reset requested")
	n.log.Debug().Str("email", email).Str("reset_token", token).Msg("password reset token issued")
	return nil
}
