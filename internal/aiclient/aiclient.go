// Package aiclient defines the single capability the core pipeline needs
// from an AI image provider — "given a prompt, return a decoded RGB bitmap
// of requested dimensions" — plus a deterministic offline Stub that lets
// the rest of the pipeline run without a network call, the way the source
// project's offline test harness does.
package aiclient

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Generator is the AI collaborator contract. Implementations may return an
// image of non-exact dimensions; diffuse intake resizes it. Timeout is
// carried by ctx; retry policy is the implementation's concern.
type Generator interface {
	Generate(ctx context.Context, prompt string, width, height int) (image.Image, error)
}

// Stub is a deterministic, offline Generator. The same prompt always
// produces the same bitmap, which makes it suitable both for tests and for
// local runs without an API key.
type Stub struct{}

// Generate synthesizes a low-frequency colored noise field seeded from the
// prompt text, so distinct prompts produce visibly distinct base colors
// and grain while remaining fully reproducible.
func (Stub) Generate(_ context.Context, prompt string, width, height int) (image.Image, error) {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 512
	}
	seed := xxhash.Sum64([]byte(prompt))
	rng := newSplitMix64(seed)

	baseR := 0.3 + 0.5*rng.float64()
	baseG := 0.3 + 0.5*rng.float64()
	baseB := 0.3 + 0.5*rng.float64()
	freqX := 2 + rng.float64()*6
	freqY := 2 + rng.float64()*6
	phase := rng.float64() * math.Pi * 2

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		fy := float64(y) / float64(height)
		for x := 0; x < width; x++ {
			fx := float64(x) / float64(width)
			wave := 0.15 * math.Sin(2*math.Pi*freqX*fx+phase) * math.Cos(2*math.Pi*freqY*fy)
			noise := (rng.float64() - 0.5) * 0.08
			r := clamp01(baseR + wave + noise)
			g := clamp01(baseG + wave*0.8 + noise)
			b := clamp01(baseB + wave*0.6 + noise)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r * 255),
				G: uint8(g * 255),
				B: uint8(b * 255),
				A: 255,
			})
		}
	}
	return img, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// splitMix64 is a small, fast, seedable PRNG; adequate for deterministic
// synthetic texture generation, not for cryptographic use.
type splitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *splitMix64 { return &splitMix64{state: seed} }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (s *splitMix64) float64() float64 {
	return float64(s.next()>>11) / float64(1<<53)
}
