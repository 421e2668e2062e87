package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// BadgeImageSize is the pixel width/height of generated badge PNGs
const BadgeImageSize = 300

// EncodePNG renders a payload as a scannable PNG image
func EncodePNG(p *Payload) ([]byte, error) {
	text, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(text, qrcode.Medium, BadgeImageSize)
}
