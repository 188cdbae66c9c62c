package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingReference_Format(t *testing.T) {
	now := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	ref := NewBookingReference(now)

	assert.Len(t, ref, 16)
	assert.Regexp(t, regexp.MustCompile(`^BK20260131[0-9A-F]{6}$`), ref)
}

func TestNewBookingReference_UsesUTCDate(t *testing.T) {
	// 23:30 in UTC+2 is still the previous day in UTC.
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2026, 2, 1, 0, 30, 0, 0, loc)

	ref := NewBookingReference(now)

	assert.Equal(t, "BK20260131", ref[:10])
}

func TestNewBookingReference_Varies(t *testing.T) {
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[NewBookingReference(now)] = true
	}
	// Random suffixes should not collapse to a handful of values.
	assert.Greater(t, len(seen), 40)
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"jane@example.com", true},
		{"  jane@example.com  ", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"a@b", false},
		{"@example.com", false},
		{"jane@", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidEmail(tc.in), "input %q", tc.in)
	}
}
