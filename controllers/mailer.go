package controllers

import (
	"context"

	"cleanup-be/models"
)

// Mailer delivers account emails
type Mailer interface {
	SendPasswordReset(ctx context.Context, u *models.User, token string) error
}

// LogMailer writes outgoing mail to the log instead of sending it. The token
// itself is only logged at debug level.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, u *models.User, token string) error {
	log.WithField("email", u.Email).Info("password reset requested")
	log.WithField("email", u.Email).Debugf("password reset token: %s", token)
	return nil
}
