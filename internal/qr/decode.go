package qr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/tirehaus/arcade/internal/model"
)

// decodeAttempt is one entry in the prioritized decode fallback list
type decodeAttempt struct {
	name  string
	hints map[gozxing.DecodeHintType]interface{}
}

// Decode attempts are tried in order: a plain decode first, then a
// try-harder pass for photos taken in poor light or at an angle.
var decodeAttempts = []decodeAttempt{
	{name: "strict", hints: nil},
	{name: "try-harder", hints: map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}},
}

// DecodeImage extracts the text payload from a QR code image.
// A picture with no readable code is treated as a malformed payload.
func DecodeImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable image: %v", model.ErrMalformedPayload, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrMalformedPayload, err)
	}

	reader := zxqr.NewQRCodeReader()
	var lastErr error
	for _, attempt := range decodeAttempts {
		result, err := reader.Decode(bmp, attempt.hints)
		if err == nil {
			return result.GetText(), nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: no QR code found: %v", model.ErrMalformedPayload, lastErr)
}
