// fingerprint.go generates stable hashes for grouping similar events.

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/getsentry/sentry-go"
)

// maxFingerprintFrames is how many innermost frames feed the fingerprint.
const maxFingerprintFrames = 3

// Fingerprint generates a hash for grouping similar events.
// The fingerprint is based on:
//   - the level and every exception type
//   - the innermost 3 in-app frames of each exception (module and function)
//   - the message, only when the event carries no exception
//
// It ignores variable data like timestamps, event IDs, line numbers and
// exception values.
func Fingerprint(event *sentry.Event) string {
	parts := []string{string(event.Level)}

	for _, exc := range event.Exception {
		parts = append(parts, exc.Type)
		parts = append(parts, frameNames(exc.Stacktrace)...)
	}
	if len(event.Exception) == 0 {
		parts = append(parts, event.Message)
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))

	// hex-encoded first 16 bytes (32 hex chars)
	return hex.EncodeToString(hash[:16])
}

// frameNames returns "module.function" for the innermost frames. Sentry
// orders frames oldest first, so the walk runs from the end.
func frameNames(st *sentry.Stacktrace) []string {
	if st == nil {
		return nil
	}

	var names []string
	for i := len(st.Frames) - 1; i >= 0 && len(names) < maxFingerprintFrames; i-- {
		frame := st.Frames[i]
		if frame.Function == "" {
			continue
		}
		name := frame.Function
		if frame.Module != "" {
			name = frame.Module + "." + frame.Function
		}
		names = append(names, name)
	}
	return names
}
