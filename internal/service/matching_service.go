package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"neuroscent/internal/domain"
)

// ErrNoCandidates indica que no hay perfumes puntuables para el genero del
// usuario. Se reporta explicitamente: es un problema de catalogo, no un
// "no hubo buenos matches".
var ErrNoCandidates = errors.New("no perfumes available for matching")

// CatalogProvider entrega el snapshot del catalogo activo elegible para un
// genero. Lo implementan el repositorio y la cache redis que lo envuelve.
type CatalogProvider interface {
	ActiveByGender(ctx context.Context, gender string) ([]domain.CatalogEntry, error)
}

// MatchingService orquesta el ranking: filtra elegibles, puntua cada
// perfume con el AffinityEngine, ordena y corta el top-K.
type MatchingService struct {
	logger  *zap.Logger
	catalog CatalogProvider
	engine  AffinityEngine
	nlp     NLPGenerator
}

func NewMatchingService(logger *zap.Logger, catalog CatalogProvider) *MatchingService {
	return &MatchingService{
		logger:  logger,
		catalog: catalog,
	}
}

// Rank devuelve hasta topK matches ordenados por score descendente.
// El orden es estable: a igual score se conserva el orden del catalogo.
// Perfumes sin vector se saltan (no puntuan cero) y no cuentan en la
// metadata de analizados.
func (s *MatchingService) Rank(ctx context.Context, profile domain.OlfactoryProfile, gender string, topK int) ([]domain.AffinityMatch, domain.MatchMetadata, error) {
	if topK <= 0 {
		topK = 3
	}

	entries, err := s.catalog.ActiveByGender(ctx, gender)
	if err != nil {
		return nil, domain.MatchMetadata{}, err
	}

	var matches []domain.AffinityMatch
	for _, entry := range entries {
		if !entry.Perfume.IsActive || !entry.Perfume.EligibleFor(gender) {
			continue
		}
		if entry.Vector == nil {
			// Señal de calidad de datos: activo pero sin caracterizar.
			if s.logger != nil {
				s.logger.Warn("perfume sin vector, excluido del ranking",
					zap.String("perfume_id", entry.Perfume.ID),
					zap.String("name", entry.Perfume.Name),
				)
			}
			continue
		}

		score, contributions := s.engine.Score(profile, *entry.Vector)
		matches = append(matches, domain.AffinityMatch{
			Perfume:        entry.Perfume,
			Score:          score,
			Level:          domain.AffinityLevel(score),
			Contributions:  contributions,
			Description:    s.nlp.GenerateDescription(profile, *entry.Vector, score, contributions),
			Recommendation: s.nlp.GenerateRecommendation(*entry.Vector),
		})
	}

	if len(matches) == 0 {
		return nil, domain.MatchMetadata{}, ErrNoCandidates
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	totalAnalyzed := len(matches)
	if len(matches) > topK {
		matches = matches[:topK]
	}

	return matches, domain.MatchMetadata{
		TotalAnalyzed: totalAnalyzed,
		TopMatchCount: len(matches),
	}, nil
}
