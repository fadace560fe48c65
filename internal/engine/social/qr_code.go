package social

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 512
	MinQRSize     = 128
	MaxQRSize     = 2048
)

var ErrInvalidQRSize = errors.New("invalid size: must be between 128 and 2048")

// GenerateQRCode encodes a product link as a PNG so it can be attached to
// posts on platforms without clickable links.
func GenerateQRCode(link string, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultQRSize
	}
	if size < MinQRSize || size > MaxQRSize {
		return nil, ErrInvalidQRSize
	}
	if link == "" {
		return nil, errors.New("empty link")
	}

	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	return qr.PNG(size)
}
