package domain

import "testing"

func TestFeatureVector_ValuesOrder(t *testing.T) {
	v := FeatureVector{
		Intensity: 0.1,
		Citrus:    0.2,
		Floral:    0.3,
		Woody:     0.4,
		Sweet:     0.5,
		Spicy:     0.6,
		Green:     0.7,
		Aquatic:   0.8,
	}
	values := v.Values()
	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], values[i])
		}
	}
}

func TestFeatureVector_FamilyRoundtrip(t *testing.T) {
	var v FeatureVector
	for i, family := range CanonicalFamilies {
		value := float64(i+1) / 10
		v.SetFamily(family, value)
		if got := v.Family(family); got != value {
			t.Fatalf("family %s: expected %v, got %v", family, value, got)
		}
	}
	// La intensidad no es familia: no se toca por SetFamily.
	if v.Intensity != 0 {
		t.Fatalf("intensity must not be settable as family, got %v", v.Intensity)
	}
	if v.Family("unknown") != 0 {
		t.Fatalf("unknown family must read 0.0")
	}
}

func TestCanonicalFamilies_Count(t *testing.T) {
	if len(CanonicalFamilies) != 7 {
		t.Fatalf("expected 7 canonical families, got %d", len(CanonicalFamilies))
	}
}
