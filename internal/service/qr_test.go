package service

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildQRPayload(t *testing.T) {
	issued := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	payload := BuildQRPayload(11, 7, issued)

	var decoded struct {
		PerformanceID uint64 `json:"performance_id"`
		UserID        uint64 `json:"user_id"`
		Timestamp     int64  `json:"timestamp"`
	}
	assert.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, uint64(11), decoded.PerformanceID)
	assert.Equal(t, uint64(7), decoded.UserID)
	assert.Equal(t, issued.Unix(), decoded.Timestamp)
}

func TestPNGQREncoder_DataURL(t *testing.T) {
	url, err := PNGQREncoder{}.DataURL("BK20260314ABCDEF")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	assert.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}
