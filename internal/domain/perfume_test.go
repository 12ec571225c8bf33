package domain

import "testing"

func TestPerfume_EligibleFor(t *testing.T) {
	cases := []struct {
		perfumeGender string
		userGender    string
		want          bool
	}{
		{GenderUnisex, GenderMale, true},
		{GenderUnisex, GenderFemale, true},
		{GenderUnisex, "", true},
		{GenderMale, GenderMale, true},
		{GenderMale, GenderFemale, false},
		{GenderFemale, GenderFemale, true},
		{GenderFemale, GenderMale, false},
	}
	for _, tc := range cases {
		p := Perfume{Gender: tc.perfumeGender}
		if got := p.EligibleFor(tc.userGender); got != tc.want {
			t.Fatalf("perfume %s vs user %q: expected %v, got %v", tc.perfumeGender, tc.userGender, tc.want, got)
		}
	}
}

func TestPerfumeVector_Embedding(t *testing.T) {
	pv := PerfumeVector{Vector: FeatureVector{Intensity: 0.5, Citrus: 1.0, Aquatic: 0.25}}

	embedding := pv.Embedding().Slice()
	if len(embedding) != 8 {
		t.Fatalf("expected 8 dimensions, got %d", len(embedding))
	}
	if embedding[0] != 0.5 || embedding[1] != 1.0 || embedding[7] != 0.25 {
		t.Fatalf("unexpected embedding values: %v", embedding)
	}
}
