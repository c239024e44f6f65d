package encoder

import (
	"bytes"
	"image"

	"github.com/HugoSmits86/nativewebp"
)

// WebPEncoder encodes images to WebP using a pure-Go encoder, so the
// preview grid needs no external cwebp/avifenc binary.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
