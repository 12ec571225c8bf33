package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"neuroscent/internal/domain"
)

type staticCatalog struct {
	entries []domain.CatalogEntry
	err     error
}

func (c *staticCatalog) ActiveByGender(_ context.Context, _ string) ([]domain.CatalogEntry, error) {
	return c.entries, c.err
}

func catalogEntry(id, name, gender string, citrus float64) domain.CatalogEntry {
	return domain.CatalogEntry{
		Perfume: domain.Perfume{ID: id, Name: name, Gender: gender, IsActive: true},
		Vector: &domain.PerfumeVector{
			PerfumeID:         id,
			Vector:            domain.FeatureVector{Intensity: 0.5, Citrus: citrus},
			SuitableOccasions: []string{"daily"},
			SuitableTimes:     []string{domain.TimeMorning},
			Season:            domain.SeasonSummer,
			Longevity:         0.5,
		},
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		catalogEntry("p1", "Weak", domain.GenderUnisex, 0.1),
		catalogEntry("p2", "Strong", domain.GenderUnisex, 1.0),
		catalogEntry("p3", "Medium", domain.GenderUnisex, 0.5),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, metadata, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Fatalf("matches not sorted descending: %v then %v", matches[i-1].Score, matches[i].Score)
		}
	}
	if matches[0].Perfume.ID != "p2" {
		t.Fatalf("expected best match p2, got %s", matches[0].Perfume.ID)
	}
	if metadata.TotalAnalyzed != 3 || metadata.TopMatchCount != 3 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}
}

func TestRank_StableOrderOnTies(t *testing.T) {
	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		catalogEntry("first", "A", domain.GenderUnisex, 1.0),
		catalogEntry("second", "B", domain.GenderUnisex, 1.0),
		catalogEntry("third", "C", domain.GenderUnisex, 1.0),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, _, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if matches[i].Perfume.ID != id {
			t.Fatalf("tie order not stable: position %d expected %s, got %s", i, id, matches[i].Perfume.ID)
		}
	}
}

func TestRank_TopKCut(t *testing.T) {
	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		catalogEntry("p1", "A", domain.GenderUnisex, 0.2),
		catalogEntry("p2", "B", domain.GenderUnisex, 0.4),
		catalogEntry("p3", "C", domain.GenderUnisex, 0.6),
		catalogEntry("p4", "D", domain.GenderUnisex, 0.8),
		catalogEntry("p5", "E", domain.GenderUnisex, 1.0),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, metadata, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected top-3 cut, got %d matches", len(matches))
	}
	if metadata.TotalAnalyzed != 5 {
		t.Fatalf("metadata must count all scored perfumes, got %d", metadata.TotalAnalyzed)
	}
	if metadata.TopMatchCount != 3 {
		t.Fatalf("expected top match count 3, got %d", metadata.TopMatchCount)
	}
}

func TestRank_SkipsEntriesWithoutVector(t *testing.T) {
	noVector := domain.CatalogEntry{
		Perfume: domain.Perfume{ID: "bare", Name: "Bare", Gender: domain.GenderUnisex, IsActive: true},
	}
	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		noVector,
		catalogEntry("p1", "A", domain.GenderUnisex, 0.5),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, metadata, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Perfume.ID != "p1" {
		t.Fatalf("expected only p1 ranked, got %+v", matches)
	}
	if metadata.TotalAnalyzed != 1 {
		t.Fatalf("vectorless perfumes must not count as analyzed, got %d", metadata.TotalAnalyzed)
	}
}

func TestRank_NoCandidates(t *testing.T) {
	svc := NewMatchingService(zap.NewNop(), &staticCatalog{})

	_, _, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	// Catalogo con entradas pero ninguna puntuable tambien es NoCandidates.
	svc = NewMatchingService(zap.NewNop(), &staticCatalog{entries: []domain.CatalogEntry{
		{Perfume: domain.Perfume{ID: "bare", Gender: domain.GenderUnisex, IsActive: true}},
	}})
	_, _, err = svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates for vectorless catalog, got %v", err)
	}
}

func TestRank_CatalogErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := NewMatchingService(zap.NewNop(), &staticCatalog{err: boom})

	_, _, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if !errors.Is(err, boom) {
		t.Fatalf("expected catalog error to propagate, got %v", err)
	}
}

func TestRank_FiltersIneligibleDefensively(t *testing.T) {
	inactive := catalogEntry("off", "Inactive", domain.GenderUnisex, 1.0)
	inactive.Perfume.IsActive = false
	wrongGender := catalogEntry("fem", "Feminine", domain.GenderFemale, 1.0)

	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		inactive,
		wrongGender,
		catalogEntry("ok", "Unisex", domain.GenderUnisex, 0.5),
		catalogEntry("male", "Masculine", domain.GenderMale, 0.5),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, _, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderMale, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected unisex + male only, got %d matches", len(matches))
	}
	for _, m := range matches {
		if m.Perfume.ID == "off" || m.Perfume.ID == "fem" {
			t.Fatalf("ineligible perfume %s ranked", m.Perfume.ID)
		}
	}
}

func TestRank_MatchesCarryTexts(t *testing.T) {
	catalog := &staticCatalog{entries: []domain.CatalogEntry{
		catalogEntry("p1", "A", domain.GenderUnisex, 1.0),
	}}
	svc := NewMatchingService(zap.NewNop(), catalog)

	matches, _, err := svc.Rank(context.Background(), perfectMatchProfile(), domain.GenderUnisex, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches[0].Description == "" {
		t.Fatalf("expected generated description")
	}
	if matches[0].Recommendation == "" {
		t.Fatalf("expected generated recommendation")
	}
	if matches[0].Level != domain.LevelExcellent {
		t.Fatalf("expected excellent level for perfect match, got %q", matches[0].Level)
	}
}
