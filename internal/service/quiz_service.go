package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"neuroscent/internal/domain"
	"neuroscent/internal/repository"
)

var (
	ErrQuizRateLimited = errors.New("quiz rate limited")
	ErrResultNotFound  = errors.New("test result not found")
)

// ValidationError agrupa todos los problemas de las respuestas. El caller
// no debe continuar hacia la construccion del perfil.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid test answers: " + strings.Join(e.Errors, "; ")
}

// QuizService orquesta el flujo completo de un test: validar, persistir
// respuestas, derivar el perfil, rankear el catalogo y guardar la copia
// durable de los matches retornados.
type QuizService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	results  repository.ResultRepository
	perfumes repository.PerfumeRepository
	matching *MatchingService
	limiter  QuizRateLimiter

	validator AnswerValidator
	builder   ProfileBuilder
	topK      int
}

func NewQuizService(
	logger *zap.Logger,
	users repository.UserRepository,
	results repository.ResultRepository,
	perfumes repository.PerfumeRepository,
	matching *MatchingService,
	limiter QuizRateLimiter,
	topK int,
) *QuizService {
	if topK <= 0 {
		topK = 3
	}
	return &QuizService{
		logger:   logger,
		users:    users,
		results:  results,
		perfumes: perfumes,
		matching: matching,
		limiter:  limiter,
		topK:     topK,
	}
}

// QuizOutcome es la respuesta completa de un test calculado o recuperado.
type QuizOutcome struct {
	TestID      string
	UserID      string
	Profile     domain.OlfactoryProfile
	Matches     []domain.AffinityMatch
	Metadata    domain.MatchMetadata
	CompletedAt time.Time
}

// SubmitQuiz procesa respuestas crudas y devuelve el ranking top-K.
func (s *QuizService) SubmitQuiz(ctx context.Context, answers domain.QuizAnswers) (QuizOutcome, error) {
	if s.limiter != nil && !s.limiter.Allow(answers.SessionID) {
		return QuizOutcome{}, ErrQuizRateLimited
	}

	if errs := s.validator.Validate(answers); len(errs) > 0 {
		return QuizOutcome{}, &ValidationError{Errors: errs}
	}

	user, err := s.getOrCreateUser(ctx, answers.SessionID)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("get or create user: %w", err)
	}

	now := time.Now().UTC()
	testResult := domain.TestResult{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Answers:     answers,
		CompletedAt: now,
	}
	if err := s.results.CreateTestResult(ctx, testResult); err != nil {
		return QuizOutcome{}, fmt.Errorf("save test result: %w", err)
	}

	profile := s.builder.Build(answers)
	profile.ID = uuid.NewString()
	profile.TestResultID = testResult.ID
	profile.CreatedAt = now
	if err := s.results.CreateProfile(ctx, profile); err != nil {
		return QuizOutcome{}, fmt.Errorf("save olfactory profile: %w", err)
	}

	matches, metadata, err := s.matching.Rank(ctx, profile, answers.Gender, s.topK)
	if err != nil {
		return QuizOutcome{}, err
	}

	for _, match := range matches {
		affinity := domain.AffinityResult{
			ID:             uuid.NewString(),
			ProfileID:      profile.ID,
			PerfumeID:      match.Perfume.ID,
			Score:          match.Score,
			Description:    match.Description,
			Recommendation: match.Recommendation,
			CreatedAt:      now,
		}
		if err := s.results.CreateAffinityResult(ctx, affinity); err != nil {
			// Un fallo al archivar no debe tirar el ranking ya calculado.
			s.logger.Error("guardar affinity result fallo",
				zap.String("profile_id", profile.ID),
				zap.String("perfume_id", match.Perfume.ID),
				zap.Error(err),
			)
		}
	}

	return QuizOutcome{
		TestID:      testResult.ID,
		UserID:      user.ID,
		Profile:     profile,
		Matches:     matches,
		Metadata:    metadata,
		CompletedAt: testResult.CompletedAt,
	}, nil
}

// GetResult recupera un test por ID desde las copias persistidas, sin
// recalcular scores: el catalogo puede haber cambiado desde entonces.
func (s *QuizService) GetResult(ctx context.Context, testID string) (QuizOutcome, error) {
	testResult, err := s.results.GetTestResult(ctx, testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuizOutcome{}, ErrResultNotFound
		}
		return QuizOutcome{}, err
	}

	profile, err := s.results.GetProfileByTestResult(ctx, testID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuizOutcome{}, ErrResultNotFound
		}
		return QuizOutcome{}, err
	}

	stored, err := s.results.ListTopByProfile(ctx, profile.ID, s.topK)
	if err != nil {
		return QuizOutcome{}, err
	}

	var matches []domain.AffinityMatch
	for _, affinity := range stored {
		perfume, err := s.perfumes.GetByID(ctx, affinity.PerfumeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return QuizOutcome{}, err
		}
		matches = append(matches, domain.AffinityMatch{
			Perfume:        perfume,
			Score:          affinity.Score,
			Level:          domain.AffinityLevel(affinity.Score),
			Description:    affinity.Description,
			Recommendation: affinity.Recommendation,
		})
	}

	return QuizOutcome{
		TestID:      testResult.ID,
		UserID:      testResult.UserID,
		Profile:     profile,
		Matches:     matches,
		Metadata:    domain.MatchMetadata{TopMatchCount: len(matches)},
		CompletedAt: testResult.CompletedAt,
	}, nil
}

func (s *QuizService) getOrCreateUser(ctx context.Context, sessionID string) (domain.User, error) {
	user, err := s.users.GetBySessionID(ctx, sessionID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	user = domain.User{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
