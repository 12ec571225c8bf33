package domain

import "testing"

func TestAffinityLevel_Bands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, LevelExcellent},
		{80.0, LevelExcellent},
		{79.99, LevelGood},
		{60.0, LevelGood},
		{59.99, LevelModerate},
		{40.0, LevelModerate},
		{39.99, LevelLow},
		{0, LevelLow},
	}
	for _, tc := range cases {
		if got := AffinityLevel(tc.score); got != tc.want {
			t.Fatalf("score %v: expected %q, got %q", tc.score, tc.want, got)
		}
	}
}
