// Package qr renders the small QR image attached to certificate emails.
package qr

import (
	"fmt"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// imageSize is the rendered PNG edge length in pixels.
const imageSize = 256

// ForAsset encodes the asset id, as decimal text, into a PNG QR code.
func ForAsset(assetID uint64) ([]byte, error) {
	png, err := qrcode.Encode(strconv.FormatUint(assetID, 10), qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encoding QR for asset %d: %w", assetID, err)
	}
	return png, nil
}
