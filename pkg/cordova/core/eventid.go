package core

import (
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// NewEventID returns a random event ID: a UUID v4 in 32 hex characters.
func NewEventID() sentry.EventID {
	return sentry.EventID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
