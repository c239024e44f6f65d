package material

import "testing"

func TestParseExactNames(t *testing.T) {
	cases := map[string]Class{
		"stone":    Stone,
		"Brick":    Brick,
		"WOOD":     Wood,
		"metal":    Metal,
		"fabric":   Fabric,
		"concrete": Concrete,
		"":         Generic,
		"unknown":  Generic,
	}
	for label, want := range cases {
		if got := Parse(label); got != want {
			t.Errorf("Parse(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestParseMetalAliases(t *testing.T) {
	for _, alias := range []string{"gold", "copper", "brass", "Gold", "COPPER"} {
		if got := Parse(alias); got != Metal {
			t.Errorf("Parse(%q) = %v, want Metal", alias, got)
		}
	}
}

func TestParseMapKindRoundTrip(t *testing.T) {
	for _, k := range []MapKind{Diffuse, Normal, Roughness, Metallic, AO, Height, Emissive} {
		got, ok := ParseMapKind(k.String())
		if !ok {
			t.Fatalf("ParseMapKind(%q) not recognized", k.String())
		}
		if got != k {
			t.Errorf("ParseMapKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseMapKindRejectsUnknown(t *testing.T) {
	if _, ok := ParseMapKind("specular"); ok {
		t.Error("expected specular to be unrecognized")
	}
}

func TestAllCoreKindsExcludesEmissive(t *testing.T) {
	for _, k := range AllCoreKinds() {
		if k == Emissive {
			t.Error("AllCoreKinds must not include the opt-in emissive kind")
		}
	}
	if len(AllCoreKinds()) != 6 {
		t.Errorf("AllCoreKinds() length = %d, want 6", len(AllCoreKinds()))
	}
}

func TestRoughnessPresetForUnknownClassFallsBackToGeneric(t *testing.T) {
	got := RoughnessPresetFor(Class(999))
	want := RoughnessPresetFor(Generic)
	if got != want {
		t.Errorf("RoughnessPresetFor(unknown) = %+v, want generic preset %+v", got, want)
	}
}

func TestMetallicBaseForOnlyMetalIsOne(t *testing.T) {
	if MetallicBaseFor(Metal) != 1.0 {
		t.Error("MetallicBaseFor(Metal) should be 1.0")
	}
	for _, c := range []Class{Generic, Stone, Brick, Wood, Fabric, Concrete} {
		if MetallicBaseFor(c) != 0.0 {
			t.Errorf("MetallicBaseFor(%v) should be 0.0", c)
		}
	}
}
