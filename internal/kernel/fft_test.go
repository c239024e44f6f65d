package kernel

import "testing"

func TestFFT2IFFT2RoundTrip(t *testing.T) {
	w, h := 5, 3
	plane := make([]float32, w*h)
	for i := range plane {
		plane[i] = float32(i%7) / 7
	}
	spectrum, err := FFT2(plane, w, h)
	if err != nil {
		t.Fatal(err)
	}
	out := IFFT2(spectrum)
	if len(out) != w*h {
		t.Fatalf("round trip changed length: got %d, want %d", len(out), w*h)
	}
	for i := range plane {
		if diff := out[i] - plane[i]; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("index %d: fft/ifft round trip mismatch: got %f want %f", i, out[i], plane[i])
		}
	}
}

func TestFFT2ZeroAreaFails(t *testing.T) {
	if _, err := FFT2(nil, 0, 4); err == nil {
		t.Fatal("expected InvalidShape for zero-area plane")
	}
}

func TestHannWindow2DZeroAtEdges(t *testing.T) {
	w, h := 9, 9
	win := HannWindow2D(w, h)
	if v := win[0]; v > 1e-6 {
		t.Errorf("Hann window should be ~0 at corner, got %f", v)
	}
	cy, cx := h/2, w/2
	if v := win[cy*w+cx]; v < 0.99 {
		t.Errorf("Hann window should peak near 1 at center, got %f", v)
	}
}

func TestRadialHighPassSuppressesDC(t *testing.T) {
	w, h := 8, 8
	plane := make([]float32, w*h)
	for i := range plane {
		plane[i] = 0.5
	}
	spectrum, err := FFT2(plane, w, h)
	if err != nil {
		t.Fatal(err)
	}
	RadialHighPass(spectrum, 0.01*float64(w))
	after := spectrum.Data[0]
	// r=0 at the DC index means the high-pass mask 1-exp(0) is exactly
	// zero there, so the DC term must be fully suppressed.
	if real(after) > 1e-6 || real(after) < -1e-6 {
		t.Errorf("high-pass should zero the DC term, got %v", after)
	}
}
