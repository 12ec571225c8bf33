package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"neuroscent/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Sentencias idempotentes del esquema, aplicadas en orden al arrancar.
// La extension pgvector debe existir antes de crear perfume_vectors.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS perfumes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		purchase_url TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT 'unisex',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS perfume_vectors (
		id TEXT PRIMARY KEY,
		perfume_id TEXT NOT NULL UNIQUE REFERENCES perfumes(id) ON DELETE CASCADE,
		intensity DOUBLE PRECISION NOT NULL DEFAULT 0,
		citrus DOUBLE PRECISION NOT NULL DEFAULT 0,
		floral DOUBLE PRECISION NOT NULL DEFAULT 0,
		woody DOUBLE PRECISION NOT NULL DEFAULT 0,
		sweet DOUBLE PRECISION NOT NULL DEFAULT 0,
		spicy DOUBLE PRECISION NOT NULL DEFAULT 0,
		green DOUBLE PRECISION NOT NULL DEFAULT 0,
		aquatic DOUBLE PRECISION NOT NULL DEFAULT 0,
		embedding vector(8),
		suitable_occasions TEXT[] NOT NULL DEFAULT '{}',
		suitable_times TEXT[] NOT NULL DEFAULT '{}',
		season TEXT NOT NULL DEFAULT '',
		longevity DOUBLE PRECISION NOT NULL DEFAULT 0,
		concentration TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		answers JSONB NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS olfactory_profiles (
		id TEXT PRIMARY KEY,
		test_result_id TEXT NOT NULL UNIQUE REFERENCES test_results(id) ON DELETE CASCADE,
		intensity DOUBLE PRECISION NOT NULL DEFAULT 0,
		citrus DOUBLE PRECISION NOT NULL DEFAULT 0,
		floral DOUBLE PRECISION NOT NULL DEFAULT 0,
		woody DOUBLE PRECISION NOT NULL DEFAULT 0,
		sweet DOUBLE PRECISION NOT NULL DEFAULT 0,
		spicy DOUBLE PRECISION NOT NULL DEFAULT 0,
		green DOUBLE PRECISION NOT NULL DEFAULT 0,
		aquatic DOUBLE PRECISION NOT NULL DEFAULT 0,
		rejected_families TEXT[] NOT NULL DEFAULT '{}',
		emotion TEXT NOT NULL DEFAULT '',
		time_of_day TEXT[] NOT NULL DEFAULT '{}',
		occasions TEXT[] NOT NULL DEFAULT '{}',
		season TEXT NOT NULL DEFAULT '',
		longevity DOUBLE PRECISION NOT NULL DEFAULT 0,
		concentration TEXT NOT NULL DEFAULT '',
		reference_perfume TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS affinity_results (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES olfactory_profiles(id) ON DELETE CASCADE,
		perfume_id TEXT NOT NULL,
		affinity_score DOUBLE PRECISION NOT NULL,
		personalized_description TEXT NOT NULL DEFAULT '',
		usage_recommendation TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_affinity_results_profile_score
		ON affinity_results (profile_id, affinity_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_perfumes_active_gender
		ON perfumes (is_active, gender)`,
}

// EnsureSchema aplica el esquema al arrancar. Todas las sentencias son
// idempotentes, asi que reiniciar el servicio es seguro.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
