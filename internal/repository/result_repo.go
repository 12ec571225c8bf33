package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neuroscent/internal/domain"
)

// ResultRepository persiste tests completados, perfiles derivados y las
// copias durables de los matches retornados.
type ResultRepository interface {
	CreateTestResult(ctx context.Context, result domain.TestResult) error
	GetTestResult(ctx context.Context, id string) (domain.TestResult, error)
	CreateProfile(ctx context.Context, profile domain.OlfactoryProfile) error
	GetProfileByTestResult(ctx context.Context, testResultID string) (domain.OlfactoryProfile, error)
	CreateAffinityResult(ctx context.Context, result domain.AffinityResult) error
	ListTopByProfile(ctx context.Context, profileID string, limit int) ([]domain.AffinityResult, error)
}

// PgResultRepository implementa ResultRepository usando pgxpool.
type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) CreateTestResult(ctx context.Context, result domain.TestResult) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO test_results (id, user_id, answers, completed_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		answers,
		result.CompletedAt,
	)
	return err
}

func (r *PgResultRepository) GetTestResult(ctx context.Context, id string) (domain.TestResult, error) {
	const query = `
		SELECT id, user_id, answers, completed_at
		FROM test_results
		WHERE id = $1
	`
	var (
		result  domain.TestResult
		answers []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.UserID,
		&answers,
		&result.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TestResult{}, err
	}
	if err != nil {
		return domain.TestResult{}, err
	}
	if err := json.Unmarshal(answers, &result.Answers); err != nil {
		return domain.TestResult{}, err
	}
	return result, nil
}

func (r *PgResultRepository) CreateProfile(ctx context.Context, profile domain.OlfactoryProfile) error {
	const query = `
		INSERT INTO olfactory_profiles (
			id, test_result_id, intensity, citrus, floral, woody, sweet, spicy, green, aquatic,
			rejected_families, emotion, time_of_day, occasions, season, longevity, concentration,
			reference_perfume, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.TestResultID,
		profile.Vector.Intensity,
		profile.Vector.Citrus,
		profile.Vector.Floral,
		profile.Vector.Woody,
		profile.Vector.Sweet,
		profile.Vector.Spicy,
		profile.Vector.Green,
		profile.Vector.Aquatic,
		profile.RejectedFamilies,
		profile.Emotion,
		profile.TimeOfDay,
		profile.Occasions,
		profile.Season,
		profile.Longevity,
		profile.Concentration,
		profile.ReferencePerfume,
		profile.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) GetProfileByTestResult(ctx context.Context, testResultID string) (domain.OlfactoryProfile, error) {
	const query = `
		SELECT id, test_result_id, intensity, citrus, floral, woody, sweet, spicy, green, aquatic,
			rejected_families, emotion, time_of_day, occasions, season, longevity, concentration,
			reference_perfume, created_at
		FROM olfactory_profiles
		WHERE test_result_id = $1
	`
	var p domain.OlfactoryProfile
	err := r.pool.QueryRow(ctx, query, testResultID).Scan(
		&p.ID,
		&p.TestResultID,
		&p.Vector.Intensity,
		&p.Vector.Citrus,
		&p.Vector.Floral,
		&p.Vector.Woody,
		&p.Vector.Sweet,
		&p.Vector.Spicy,
		&p.Vector.Green,
		&p.Vector.Aquatic,
		&p.RejectedFamilies,
		&p.Emotion,
		&p.TimeOfDay,
		&p.Occasions,
		&p.Season,
		&p.Longevity,
		&p.Concentration,
		&p.ReferencePerfume,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.OlfactoryProfile{}, err
	}
	return p, err
}

func (r *PgResultRepository) CreateAffinityResult(ctx context.Context, result domain.AffinityResult) error {
	const query = `
		INSERT INTO affinity_results (id, profile_id, perfume_id, affinity_score, personalized_description, usage_recommendation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		result.ID,
		result.ProfileID,
		result.PerfumeID,
		result.Score,
		result.Description,
		result.Recommendation,
		result.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) ListTopByProfile(ctx context.Context, profileID string, limit int) ([]domain.AffinityResult, error) {
	if limit <= 0 {
		limit = 3
	}
	const query = `
		SELECT id, profile_id, perfume_id, affinity_score, personalized_description, usage_recommendation, created_at
		FROM affinity_results
		WHERE profile_id = $1
		ORDER BY affinity_score DESC, created_at
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.AffinityResult
	for rows.Next() {
		var ar domain.AffinityResult
		if err := rows.Scan(
			&ar.ID,
			&ar.ProfileID,
			&ar.PerfumeID,
			&ar.Score,
			&ar.Description,
			&ar.Recommendation,
			&ar.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
