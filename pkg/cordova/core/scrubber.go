// scrubber.go implements fail-closed sensitive data redaction for events.

package core

import (
	"regexp"
	"strings"

	"github.com/getsentry/sentry-go"
)

// Redaction placeholders.
const (
	redacted       = "[REDACTED]"
	truncateMarker = "...[TRUNCATED]"
)

// ScrubberConfig controls scrubbing behavior.
type ScrubberConfig struct {
	// SensitiveKeys contains additional case-insensitive substrings that
	// mark a tag or extra key as sensitive.
	SensitiveKeys []string

	// MaxMessageSize is the maximum length for messages and exception values (default: 4096).
	MaxMessageSize int

	// MaxExtraValueSize is the maximum length per extra string value (default: 1024).
	MaxExtraValueSize int

	// ScrubMessages enables pattern scrubbing of messages for secrets/PII (default: true).
	ScrubMessages bool

	// NormalizePaths strips user-specific directories from stack frame paths (default: true).
	NormalizePaths bool
}

// DefaultScrubberConfig returns production-safe defaults.
func DefaultScrubberConfig() ScrubberConfig {
	return ScrubberConfig{
		MaxMessageSize:    4096,
		MaxExtraValueSize: 1024,
		ScrubMessages:     true,
		NormalizePaths:    true,
	}
}

// compiled once at package init
var messageScrubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|token)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)(authorization|bearer)[=:\s]+['"]?[\w\-\.]+['"]?[\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`), // JWT
	regexp.MustCompile(`(?i)ghp_[a-zA-Z0-9]{36}`),
	regexp.MustCompile(`(?i)xox[baprs]-[a-zA-Z0-9\-]{10,}`),

	regexp.MustCompile(`(?i)(password|passwd|secret|credential)[=:\s]+['"]?[^\s'",]+['"]?`),

	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), // email
	regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),         // card number
}

var defaultSensitiveKeys = []string{
	"token",
	"key",
	"secret",
	"password",
	"passwd",
	"credential",
	"auth",
	"cookie",
}

var pathNormalizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/home/[^/]+/`),
	regexp.MustCompile(`/Users/[^/]+/`),
	regexp.MustCompile(`C:\\Users\\[^\\]+\\`),
	regexp.MustCompile(`/data/user/\d+/[^/]+/`), // Android app sandbox
	regexp.MustCompile(`/var/mobile/Containers/Data/Application/[^/]+/`),
}

// Scrubber redacts sensitive data from events.
type Scrubber struct {
	cfg  ScrubberConfig
	keys []string
}

// NewScrubber creates a new scrubber with the given configuration.
func NewScrubber(cfg ScrubberConfig) *Scrubber {
	defaults := DefaultScrubberConfig()
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaults.MaxMessageSize
	}
	if cfg.MaxExtraValueSize <= 0 {
		cfg.MaxExtraValueSize = defaults.MaxExtraValueSize
	}

	keys := make([]string, 0, len(defaultSensitiveKeys)+len(cfg.SensitiveKeys))
	keys = append(keys, defaultSensitiveKeys...)
	for _, k := range cfg.SensitiveKeys {
		keys = append(keys, strings.ToLower(k))
	}

	return &Scrubber{cfg: cfg, keys: keys}
}

// ScrubEvent redacts the event in place: message, exception values, stack
// frame paths, tags, extra and the user's IP address.
func (s *Scrubber) ScrubEvent(event *sentry.Event) {
	event.Message = s.ScrubMessage(event.Message)

	for i := range event.Exception {
		exc := &event.Exception[i]
		exc.Value = s.ScrubMessage(exc.Value)
		if s.cfg.NormalizePaths && exc.Stacktrace != nil {
			for j := range exc.Stacktrace.Frames {
				frame := &exc.Stacktrace.Frames[j]
				frame.AbsPath = NormalizePath(frame.AbsPath)
				frame.Filename = NormalizePath(frame.Filename)
			}
		}
	}

	for key := range event.Tags {
		if s.isSensitiveKey(key) {
			event.Tags[key] = redacted
		}
	}

	event.Extra = s.ScrubExtra(event.Extra)

	for _, crumb := range event.Breadcrumbs {
		if crumb != nil {
			crumb.Message = s.ScrubMessage(crumb.Message)
		}
	}

	event.User.IPAddress = ""
}

// ScrubMessage scrubs sensitive patterns from a message.
func (s *Scrubber) ScrubMessage(msg string) string {
	if msg == "" {
		return msg
	}
	if len(msg) > s.cfg.MaxMessageSize {
		msg = truncateWithMarker(msg, s.cfg.MaxMessageSize)
	}
	if !s.cfg.ScrubMessages {
		return msg
	}
	for _, pattern := range messageScrubPatterns {
		msg = pattern.ReplaceAllString(msg, redacted)
	}
	return msg
}

// ScrubExtra redacts sensitive keys and scrubs string values. Values of
// types the scrubber cannot inspect are fully redacted when their key is
// sensitive and passed through otherwise.
func (s *Scrubber) ScrubExtra(extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		return nil
	}

	result := make(map[string]interface{}, len(extra))
	for key, value := range extra {
		if s.isSensitiveKey(key) {
			result[key] = redacted
			continue
		}
		if str, ok := value.(string); ok {
			if len(str) > s.cfg.MaxExtraValueSize {
				str = truncateWithMarker(str, s.cfg.MaxExtraValueSize)
			}
			result[key] = s.ScrubMessage(str)
			continue
		}
		result[key] = value
	}
	return result
}

// NormalizePath removes user-specific directories from a file path.
func NormalizePath(path string) string {
	for _, pattern := range pathNormalizationPatterns {
		path = pattern.ReplaceAllString(path, "/[PATH]/")
	}
	return path
}

func (s *Scrubber) isSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range s.keys {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// truncateWithMarker truncates a string and adds a truncation marker.
func truncateWithMarker(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateMarker) {
		return truncateMarker[:maxLen]
	}
	return s[:runeBoundary(s, maxLen-len(truncateMarker))] + truncateMarker
}
