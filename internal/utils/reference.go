package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingReference returns a reference of the form
// BK20250131A3F09C: the literal BK prefix, the current UTC date and
// six uppercase hex characters drawn from a fresh UUID. Uniqueness is
// verified against storage by the caller, which regenerates on
// collision.
func NewBookingReference(now time.Time) string {
	u := uuid.New()
	hexPart := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))[:6]
	return "BK" + now.UTC().Format("20060102") + hexPart
}
