package service

import (
	"math"
	"reflect"
	"testing"

	"neuroscent/internal/domain"
)

func perfectMatchProfile() domain.OlfactoryProfile {
	return domain.OlfactoryProfile{
		Vector:           domain.FeatureVector{Intensity: 0.5, Citrus: 1.0},
		RejectedFamilies: []string{},
		TimeOfDay:        []string{domain.TimeMorning},
		Occasions:        []string{"daily"},
		Season:           domain.SeasonSummer,
		Longevity:        0.5,
	}
}

func perfectMatchVector() domain.PerfumeVector {
	return domain.PerfumeVector{
		Vector:            domain.FeatureVector{Intensity: 0.5, Citrus: 1.0},
		SuitableOccasions: []string{"daily"},
		SuitableTimes:     []string{domain.TimeMorning},
		Season:            domain.SeasonSummer,
		Longevity:         0.5,
	}
}

func TestScore_PerfectMatchScenario(t *testing.T) {
	engine := AffinityEngine{}

	score, contributions := engine.Score(perfectMatchProfile(), perfectMatchVector())
	if score != 95.0 {
		t.Fatalf("expected score 95.0 for identical vector and context, got %v", score)
	}
	if domain.AffinityLevel(score) != domain.LevelExcellent {
		t.Fatalf("expected excellent level, got %q", domain.AffinityLevel(score))
	}
	if contributions[domain.FamilyCitrus] != 1.0 {
		t.Fatalf("expected citrus contribution 1.0, got %v", contributions[domain.FamilyCitrus])
	}
	if contributions[domain.FamilyWoody] != 0.0 {
		t.Fatalf("expected woody contribution 0.0, got %v", contributions[domain.FamilyWoody])
	}
}

func TestScore_HardRejection(t *testing.T) {
	engine := AffinityEngine{}

	profile := perfectMatchProfile()
	profile.RejectedFamilies = []string{"citrus"}
	vector := perfectMatchVector()
	vector.Vector.Citrus = 0.9

	score, contributions := engine.Score(profile, vector)
	if score != 0.0 {
		t.Fatalf("expected hard disqualification score 0.0, got %v", score)
	}
	if len(contributions) != 0 {
		t.Fatalf("expected empty contributions on disqualification, got %v", contributions)
	}
}

func TestScore_SoftRejectionPenalty(t *testing.T) {
	engine := AffinityEngine{}

	profile := perfectMatchProfile()
	vector := perfectMatchVector()

	base, _ := engine.Score(profile, vector)

	// Citrus 0.5 con una sola familia rechazada: rejection_score 0.5, bajo
	// el umbral 0.7 pero con penalizacion proporcional del 15%.
	profile.RejectedFamilies = []string{"citrus"}
	vector.Vector.Citrus = 0.5
	penalized, contributions := engine.Score(profile, vector)

	if penalized >= base {
		t.Fatalf("expected penalized score below %v, got %v", base, penalized)
	}
	if len(contributions) == 0 {
		t.Fatalf("soft rejection must keep contributions, got empty map")
	}
}

func TestScore_ZeroVectorSimilarity(t *testing.T) {
	engine := AffinityEngine{}

	profile := perfectMatchProfile()
	profile.Vector = domain.FeatureVector{}
	vector := perfectMatchVector()

	score, _ := engine.Score(profile, vector)
	// Sin similitud (vector cero) el score solo lleva contexto,
	// persistencia y emocion: 0 + 30 + 20 + 5.
	if score != 55.0 {
		t.Fatalf("expected score 55.0 with zero profile vector, got %v", score)
	}
}

func TestScore_Idempotent(t *testing.T) {
	engine := AffinityEngine{}
	profile := perfectMatchProfile()
	profile.RejectedFamilies = []string{"sweet"}
	vector := perfectMatchVector()
	vector.Vector.Sweet = 0.4

	score1, contrib1 := engine.Score(profile, vector)
	score2, contrib2 := engine.Score(profile, vector)
	if score1 != score2 {
		t.Fatalf("expected identical scores, got %v and %v", score1, score2)
	}
	if !reflect.DeepEqual(contrib1, contrib2) {
		t.Fatalf("expected identical contributions, got %v and %v", contrib1, contrib2)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	engine := AffinityEngine{}

	profiles := []domain.OlfactoryProfile{
		{},
		perfectMatchProfile(),
		{Vector: domain.FeatureVector{Intensity: 1, Citrus: 1, Floral: 1, Woody: 1, Sweet: 1, Spicy: 1, Green: 1, Aquatic: 1}, Longevity: 1},
		{RejectedFamilies: []string{"woody", "sweet"}, Vector: domain.FeatureVector{Intensity: 0.2}},
	}
	vectors := []domain.PerfumeVector{
		{},
		perfectMatchVector(),
		{Vector: domain.FeatureVector{Intensity: 1, Citrus: 1, Floral: 1, Woody: 1, Sweet: 1, Spicy: 1, Green: 1, Aquatic: 1}, Longevity: 1},
	}

	for _, p := range profiles {
		for _, v := range vectors {
			score, _ := engine.Score(p, v)
			if score < 0 || score > 100 {
				t.Fatalf("score out of range: %v for profile %+v vector %+v", score, p, v)
			}
		}
	}
}

func TestRejectionScore_SubstringMatching(t *testing.T) {
	engine := AffinityEngine{}

	vector := domain.FeatureVector{Woody: 0.8, Citrus: 0.6}

	// "Woodsy-citrus" matchea woody? No: contiene "citrus" pero no "woody".
	got := engine.rejectionScore([]string{"WOODSY-CITRUS"}, vector)
	if got != 0.6 {
		t.Fatalf("expected rejection 0.6 via citrus substring, got %v", got)
	}

	// Una etiqueta que matchea dos familias acumula ambas intensidades.
	got = engine.rejectionScore([]string{"woody citrus"}, vector)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected rejection capped at 1.0, got %v", got)
	}

	if engine.rejectionScore(nil, vector) != 0.0 {
		t.Fatalf("expected 0.0 for empty rejected list")
	}
}

func TestContextMatch_NeutralAndSeasonPolicy(t *testing.T) {
	engine := AffinityEngine{}

	// Todo faltante: 0.5 en los tres factores.
	got := engine.contextMatch(nil, nil, "", nil, nil, "")
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected neutral 0.5, got %v", got)
	}

	// Estaciones presentes pero distintas tambien puntuan neutral 0.5:
	// solo match exacto o all_year del perfume da credito completo.
	mismatch := engine.contextMatch([]string{"daily"}, []string{"morning"}, domain.SeasonWinter, []string{"daily"}, []string{"morning"}, domain.SeasonSummer)
	missing := engine.contextMatch([]string{"daily"}, []string{"morning"}, "", []string{"daily"}, []string{"morning"}, domain.SeasonSummer)
	if mismatch != missing {
		t.Fatalf("season mismatch must score like missing data: %v vs %v", mismatch, missing)
	}

	allYear := engine.contextMatch([]string{"daily"}, []string{"morning"}, domain.SeasonWinter, []string{"daily"}, []string{"morning"}, domain.SeasonAllYear)
	if allYear <= mismatch {
		t.Fatalf("all_year must earn full season credit: %v vs %v", allYear, mismatch)
	}
}

func TestOverlapScore(t *testing.T) {
	cases := []struct {
		name     string
		user     []string
		perfume  []string
		expected float64
	}{
		{"both empty", nil, nil, 0.5},
		{"user empty", nil, []string{"work"}, 0.5},
		{"perfume empty", []string{"work"}, nil, 0.5},
		{"full overlap", []string{"work", "daily"}, []string{"daily", "work"}, 1.0},
		{"half overlap", []string{"work", "daily"}, []string{"work"}, 0.5},
		{"no overlap", []string{"romantic"}, []string{"work"}, 0.0},
	}
	for _, tc := range cases {
		if got := overlapScore(tc.user, tc.perfume); math.Abs(got-tc.expected) > 1e-9 {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{0.5, 1.0, 0, 0, 0, 0, 0, 0}
	if got := cosineSimilarity(a, a); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected similarity 1.0 for identical vectors, got %v", got)
	}

	zero := make([]float64, 8)
	if got := cosineSimilarity(a, zero); got != 0.0 {
		t.Fatalf("expected 0.0 for zero magnitude, got %v", got)
	}
	if got := cosineSimilarity(zero, zero); got != 0.0 {
		t.Fatalf("expected 0.0 for both zero, got %v", got)
	}

	orthogonalA := []float64{1, 0}
	orthogonalB := []float64{0, 1}
	if got := cosineSimilarity(orthogonalA, orthogonalB); got != 0.0 {
		t.Fatalf("expected 0.0 for orthogonal vectors, got %v", got)
	}
}

func TestOrNeutral_MissingPersistenceValues(t *testing.T) {
	engine := AffinityEngine{}

	// Perfil sin longevidad contra perfume sin longevidad: ambos resuelven
	// a 0.5 y el match de persistencia no castiga al extremo.
	profile := perfectMatchProfile()
	profile.Longevity = 0
	vector := perfectMatchVector()
	vector.Longevity = 0

	score, _ := engine.Score(profile, vector)
	if score != 95.0 {
		t.Fatalf("expected missing longevity to resolve neutral on both sides, got %v", score)
	}
}
