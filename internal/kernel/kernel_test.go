package kernel

import "testing"

func TestGaussianBlurPreservesConstantPlane(t *testing.T) {
	plane := make([]float32, 8*8)
	for i := range plane {
		plane[i] = 0.5
	}
	out := GaussianBlur(plane, 8, 8, 2)
	for i, v := range out {
		if diff := v - 0.5; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("index %d: blurring a constant plane changed its value: %f", i, v)
		}
	}
}

func TestGaussianBlurZeroSigmaIsIdentity(t *testing.T) {
	plane := []float32{1, 2, 3, 4}
	out := GaussianBlur(plane, 2, 2, 0)
	for i := range plane {
		if out[i] != plane[i] {
			t.Errorf("sigma=0 should be identity, index %d: got %f want %f", i, out[i], plane[i])
		}
	}
}

func TestSobelXYFlatPlaneIsZero(t *testing.T) {
	plane := make([]float32, 6*6)
	for i := range plane {
		plane[i] = 0.25
	}
	gx, gy := SobelXY(plane, 6, 6)
	for i := range gx {
		if gx[i] != 0 || gy[i] != 0 {
			t.Fatalf("index %d: expected zero gradient on flat plane, got (%f, %f)", i, gx[i], gy[i])
		}
	}
}

func TestRotateZeroDegreesIsIdentity(t *testing.T) {
	plane := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	out := Rotate(plane, 3, 3, 0)
	for i := range plane {
		if diff := out[i] - plane[i]; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("index %d: rotate(0deg) should be near-identity, got %f want %f", i, out[i], plane[i])
		}
	}
}

func TestMorphOpenRemovesSpeckle(t *testing.T) {
	w, h := 5, 5
	mask := make([]float32, w*h)
	mask[2*w+2] = 1 // single isolated pixel
	out := MorphOpen(mask, w, h)
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d: expected isolated speckle removed, got %f", i, v)
		}
	}
}

func TestMorphOpenKeepsSolidBlock(t *testing.T) {
	w, h := 6, 6
	mask := make([]float32, w*h)
	for y := 1; y < 5; y++ {
		for x := 1; x < 5; x++ {
			mask[y*w+x] = 1
		}
	}
	out := MorphOpen(mask, w, h)
	if out[3*w+3] != 1 {
		t.Errorf("expected interior of a solid block to survive morphological open")
	}
}
