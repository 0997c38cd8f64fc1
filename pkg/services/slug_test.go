package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Income", "income"},
		{"spaces", "Income Verification", "income-verification"},
		{"collapses runs", "Income   Verification", "income-verification"},
		{"underscores and hyphens", "gross_income - net", "gross-income-net"},
		{"strips punctuation", "Payments (ACH)!", "payments-ach"},
		{"trims edges", "  -- Utilities --  ", "utilities"},
		{"everything stripped", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{
		"income":   true,
		"income-1": true,
	}
	assert.Equal(t, "assets", uniqueSlug("assets", taken))
	assert.Equal(t, "income-2", uniqueSlug("income", taken))
	assert.Equal(t, "untitled", uniqueSlug("", nil))
}
