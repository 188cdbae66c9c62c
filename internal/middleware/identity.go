package middleware

// identity.go holds helpers shared across middleware files for naming
// the current caller. Rate limiting and cache keys use the string form
// so anonymous traffic buckets under "anon".

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or
// "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get("user_id").(uint64); ok && id > 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
