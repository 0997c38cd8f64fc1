package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, SanitizeError(nil))
	})

	t.Run("bearer token redacted", func(t *testing.T) {
		err := errors.New("failed to parse token: Bearer eyJhbGciOi.eyJzdWIiOi.c2lnbmF0dXJl is malformed")
		got := SanitizeError(err)
		assert.Contains(t, got, "Bearer "+RedactedText)
		assert.NotContains(t, got, "eyJhbGciOi")
	})

	t.Run("bare token segment redacted", func(t *testing.T) {
		err := errors.New("token eyJhbGciOi.eyJzdWIiOi.c2lnbmF0dXJl rejected")
		got := SanitizeError(err)
		assert.NotContains(t, got, "c2lnbmF0dXJl")
	})

	t.Run("secret pairs redacted", func(t *testing.T) {
		err := errors.New("sync failed: secret=hunter2&retry=1")
		got := SanitizeError(err)
		assert.Contains(t, got, "secret="+RedactedText)
		assert.NotContains(t, got, "hunter2")
		assert.Contains(t, got, "retry=1")
	})

	t.Run("ordinary error untouched", func(t *testing.T) {
		err := errors.New("record not found")
		assert.Equal(t, "record not found", SanitizeError(err))
	})
}

func TestTruncateQuery(t *testing.T) {
	assert.Equal(t, "income", TruncateQuery("income"))

	long := strings.Repeat("q", MaxQueryLogLength+10)
	got := TruncateQuery(long)
	assert.Len(t, got, MaxQueryLogLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
