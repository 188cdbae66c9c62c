package service

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// QREncoder renders a content string into an image artifact embeddable
// in API responses and confirmation mail.
type QREncoder interface {
	DataURL(content string) (string, error)
}

// PNGQREncoder renders QR codes as PNG data URLs.
type PNGQREncoder struct {
	Size int // pixel edge length; 0 means 256
}

// DataURL encodes content as a QR PNG and returns it as a
// data:image/png;base64 URL.
func (e PNGQREncoder) DataURL(content string) (string, error) {
	size := e.Size
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// qrPayload is the machine-readable content embedded in each ticket's
// QR image. The human-facing qr_code column carries the booking
// reference instead.
type qrPayload struct {
	PerformanceID uint64 `json:"performance_id"`
	UserID        uint64 `json:"user_id"`
	Timestamp     int64  `json:"timestamp"`
}

// BuildQRPayload serializes the scannable ticket identity.
func BuildQRPayload(performanceID, userID uint64, issuedAt time.Time) string {
	b, _ := json.Marshal(qrPayload{
		PerformanceID: performanceID,
		UserID:        userID,
		Timestamp:     issuedAt.UTC().Unix(),
	})
	return string(b)
}
