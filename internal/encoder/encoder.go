// Package encoder implements the external output writer's format layer:
// PNG (8- and 16-bit) plus a pure-Go WebP path for the optional preview
// grid, mirroring the teacher's pluggable Encoder interface.
package encoder

import "image"

// Encoder encodes a decoded image to a specific on-disk format.
type Encoder interface {
	// Format returns the output format name ("png", "webp").
	Format() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
