package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neuroscent/internal/domain"
)

// PerfumeRepository define el contrato de persistencia del catalogo.
type PerfumeRepository interface {
	Create(ctx context.Context, perfume domain.Perfume) error
	Update(ctx context.Context, perfume domain.Perfume) error
	GetByID(ctx context.Context, id string) (domain.Perfume, error)
	List(ctx context.Context, skip, limit int, activeOnly bool) ([]domain.Perfume, error)
	ListCatalog(ctx context.Context, gender string) ([]domain.CatalogEntry, error)
	GetVector(ctx context.Context, perfumeID string) (domain.PerfumeVector, error)
	UpsertVector(ctx context.Context, vector domain.PerfumeVector) error
	ListSimilar(ctx context.Context, perfumeID string, k int) ([]domain.Perfume, error)
}

// PgPerfumeRepository implementa PerfumeRepository usando pgxpool.
type PgPerfumeRepository struct {
	pool *pgxpool.Pool
}

func NewPgPerfumeRepository(pool *pgxpool.Pool) *PgPerfumeRepository {
	return &PgPerfumeRepository{pool: pool}
}

func (r *PgPerfumeRepository) Create(ctx context.Context, perfume domain.Perfume) error {
	const query = `
		INSERT INTO perfumes (id, name, brand, description, image_url, purchase_url, gender, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		perfume.ID,
		perfume.Name,
		perfume.Brand,
		perfume.Description,
		perfume.ImageURL,
		perfume.PurchaseURL,
		perfume.Gender,
		perfume.IsActive,
		perfume.CreatedAt,
	)
	return err
}

func (r *PgPerfumeRepository) Update(ctx context.Context, perfume domain.Perfume) error {
	const query = `
		UPDATE perfumes
		SET name = $2, brand = $3, description = $4, image_url = $5, purchase_url = $6, gender = $7, is_active = $8
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		perfume.ID,
		perfume.Name,
		perfume.Brand,
		perfume.Description,
		perfume.ImageURL,
		perfume.PurchaseURL,
		perfume.Gender,
		perfume.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgPerfumeRepository) GetByID(ctx context.Context, id string) (domain.Perfume, error) {
	const query = `
		SELECT id, name, brand, description, image_url, purchase_url, gender, is_active, created_at
		FROM perfumes
		WHERE id = $1
	`
	var p domain.Perfume
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.ImageURL,
		&p.PurchaseURL,
		&p.Gender,
		&p.IsActive,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Perfume{}, err
	}
	return p, err
}

func (r *PgPerfumeRepository) List(ctx context.Context, skip, limit int, activeOnly bool) ([]domain.Perfume, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	const query = `
		SELECT id, name, brand, description, image_url, purchase_url, gender, is_active, created_at
		FROM perfumes
		WHERE is_active = true OR $3 = false
		ORDER BY created_at
		OFFSET $1 LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, skip, limit, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPerfumes(rows)
}

// ListCatalog devuelve los perfumes activos elegibles para un genero junto
// con su vector (nil cuando el perfume aun no tiene caracterizacion).
func (r *PgPerfumeRepository) ListCatalog(ctx context.Context, gender string) ([]domain.CatalogEntry, error) {
	const query = `
		SELECT id, name, brand, description, image_url, purchase_url, gender, is_active, created_at
		FROM perfumes
		WHERE is_active = true AND gender IN ($1, 'unisex')
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, gender)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perfumes, err := scanPerfumes(rows)
	if err != nil {
		return nil, err
	}
	if len(perfumes) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(perfumes))
	for _, p := range perfumes {
		ids = append(ids, p.ID)
	}

	const vectorQuery = `
		SELECT id, perfume_id, intensity, citrus, floral, woody, sweet, spicy, green, aquatic,
			suitable_occasions, suitable_times, season, longevity, concentration, updated_at
		FROM perfume_vectors
		WHERE perfume_id = ANY($1)
	`
	vrows, err := r.pool.Query(ctx, vectorQuery, ids)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	vectors, err := scanPerfumeVectors(vrows)
	if err != nil {
		return nil, err
	}
	byPerfume := make(map[string]domain.PerfumeVector, len(vectors))
	for _, v := range vectors {
		byPerfume[v.PerfumeID] = v
	}

	entries := make([]domain.CatalogEntry, 0, len(perfumes))
	for _, p := range perfumes {
		entry := domain.CatalogEntry{Perfume: p}
		if v, ok := byPerfume[p.ID]; ok {
			vec := v
			entry.Vector = &vec
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *PgPerfumeRepository) GetVector(ctx context.Context, perfumeID string) (domain.PerfumeVector, error) {
	const query = `
		SELECT id, perfume_id, intensity, citrus, floral, woody, sweet, spicy, green, aquatic,
			suitable_occasions, suitable_times, season, longevity, concentration, updated_at
		FROM perfume_vectors
		WHERE perfume_id = $1
	`
	rows, err := r.pool.Query(ctx, query, perfumeID)
	if err != nil {
		return domain.PerfumeVector{}, err
	}
	defer rows.Close()

	vectors, err := scanPerfumeVectors(rows)
	if err != nil {
		return domain.PerfumeVector{}, err
	}
	if len(vectors) == 0 {
		return domain.PerfumeVector{}, pgx.ErrNoRows
	}
	return vectors[0], nil
}

// UpsertVector guarda las dimensiones escalares y sincroniza la columna
// embedding vector(8) usada por ListSimilar.
func (r *PgPerfumeRepository) UpsertVector(ctx context.Context, vector domain.PerfumeVector) error {
	const query = `
		INSERT INTO perfume_vectors (
			id, perfume_id, intensity, citrus, floral, woody, sweet, spicy, green, aquatic,
			embedding, suitable_occasions, suitable_times, season, longevity, concentration, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (perfume_id) DO UPDATE SET
			intensity = EXCLUDED.intensity,
			citrus = EXCLUDED.citrus,
			floral = EXCLUDED.floral,
			woody = EXCLUDED.woody,
			sweet = EXCLUDED.sweet,
			spicy = EXCLUDED.spicy,
			green = EXCLUDED.green,
			aquatic = EXCLUDED.aquatic,
			embedding = EXCLUDED.embedding,
			suitable_occasions = EXCLUDED.suitable_occasions,
			suitable_times = EXCLUDED.suitable_times,
			season = EXCLUDED.season,
			longevity = EXCLUDED.longevity,
			concentration = EXCLUDED.concentration,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		vector.ID,
		vector.PerfumeID,
		vector.Vector.Intensity,
		vector.Vector.Citrus,
		vector.Vector.Floral,
		vector.Vector.Woody,
		vector.Vector.Sweet,
		vector.Vector.Spicy,
		vector.Vector.Green,
		vector.Vector.Aquatic,
		vector.Embedding(),
		vector.SuitableOccasions,
		vector.SuitableTimes,
		vector.Season,
		vector.Longevity,
		vector.Concentration,
		vector.UpdatedAt,
	)
	return err
}

// ListSimilar busca los k perfumes activos mas cercanos por distancia coseno
// sobre la columna embedding.
func (r *PgPerfumeRepository) ListSimilar(ctx context.Context, perfumeID string, k int) ([]domain.Perfume, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT p.id, p.name, p.brand, p.description, p.image_url, p.purchase_url, p.gender, p.is_active, p.created_at
		FROM perfumes p
		JOIN perfume_vectors v ON v.perfume_id = p.id
		WHERE p.is_active = true AND p.id <> $1
		ORDER BY v.embedding <=> (SELECT embedding FROM perfume_vectors WHERE perfume_id = $1)
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, perfumeID, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPerfumes(rows)
}

func scanPerfumes(rows pgxRows) ([]domain.Perfume, error) {
	var perfumes []domain.Perfume
	for rows.Next() {
		var p domain.Perfume
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Brand,
			&p.Description,
			&p.ImageURL,
			&p.PurchaseURL,
			&p.Gender,
			&p.IsActive,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		perfumes = append(perfumes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perfumes, nil
}

func scanPerfumeVectors(rows pgxRows) ([]domain.PerfumeVector, error) {
	var vectors []domain.PerfumeVector
	for rows.Next() {
		var v domain.PerfumeVector
		if err := rows.Scan(
			&v.ID,
			&v.PerfumeID,
			&v.Vector.Intensity,
			&v.Vector.Citrus,
			&v.Vector.Floral,
			&v.Vector.Woody,
			&v.Vector.Sweet,
			&v.Vector.Spicy,
			&v.Vector.Green,
			&v.Vector.Aquatic,
			&v.SuitableOccasions,
			&v.SuitableTimes,
			&v.Season,
			&v.Longevity,
			&v.Concentration,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
