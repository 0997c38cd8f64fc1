package logging

import (
	"regexp"
)

const (
	// MaxQueryLogLength is the maximum length of a search query to log
	MaxQueryLogLength = 100
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match JWT tokens (three base64 segments separated by dots)
	jwtPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]*`)

	// Pattern to match bare token segments leaked into parse errors
	tokenSegmentPattern = regexp.MustCompile(`[A-Za-z0-9-_]+\.[A-Za-z0-9-_]+\.[A-Za-z0-9-_]{4,}`)

	// Pattern to match shared secrets passed as key=value pairs
	secretPattern = regexp.MustCompile(`(?i)(secret|token)=[^;&\s]+`)
)

// SanitizeError sanitizes error messages that might contain bearer
// tokens or shared secrets. Use this before logging any error raised
// while handling credentials.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := jwtPattern.ReplaceAllString(err.Error(), "Bearer "+RedactedText)
	sanitized = tokenSegmentPattern.ReplaceAllString(sanitized, RedactedText)
	sanitized = secretPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	return sanitized
}

// TruncateQuery shortens a free-text search query for logging.
func TruncateQuery(query string) string {
	if len(query) <= MaxQueryLogLength {
		return query
	}
	return query[:MaxQueryLogLength] + "..."
}
