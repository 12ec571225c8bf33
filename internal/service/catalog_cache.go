package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"neuroscent/internal/domain"
	"neuroscent/internal/repository"
)

// RepoCatalogProvider adapta el repositorio de perfumes al contrato
// CatalogProvider que consume el ranking.
type RepoCatalogProvider struct {
	perfumes repository.PerfumeRepository
}

func NewRepoCatalogProvider(perfumes repository.PerfumeRepository) *RepoCatalogProvider {
	return &RepoCatalogProvider{perfumes: perfumes}
}

func (p *RepoCatalogProvider) ActiveByGender(ctx context.Context, gender string) ([]domain.CatalogEntry, error) {
	return p.perfumes.ListCatalog(ctx, gender)
}

// RedisCatalogCache envuelve un CatalogProvider con un snapshot en redis.
// Un ranking puede leer un catalogo levemente desactualizado; las
// mutaciones de admin invalidan las claves. Ante cualquier error de redis
// se cae a la fuente (fail open).
type RedisCatalogCache struct {
	client *redis.Client
	source CatalogProvider
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func NewRedisCatalogCache(client *redis.Client, source CatalogProvider, ttl time.Duration, logger *zap.Logger) *RedisCatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
		prefix: "catalog:snapshot:",
		logger: logger,
	}
}

func (c *RedisCatalogCache) ActiveByGender(ctx context.Context, gender string) ([]domain.CatalogEntry, error) {
	if c.client == nil {
		return c.source.ActiveByGender(ctx, gender)
	}

	key := c.prefix + gender
	ctxGet, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	payload, err := c.client.Get(ctxGet, key).Bytes()
	cancel()
	if err == nil {
		var entries []domain.CatalogEntry
		if err := json.Unmarshal(payload, &entries); err == nil {
			return entries, nil
		}
		c.logger.Warn("snapshot de catalogo corrupto en redis", zap.String("key", key))
	}

	entries, err := c.source.ActiveByGender(ctx, gender)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entries); err == nil {
		ctxSet, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		if err := c.client.Set(ctxSet, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("no se pudo cachear snapshot de catalogo", zap.Error(err))
		}
		cancel()
	}
	return entries, nil
}

// Invalidate borra los snapshots cacheados. Se llama tras cada mutacion de
// catalogo por admin.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	ctxDel, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	keys := []string{
		c.prefix + domain.GenderMale,
		c.prefix + domain.GenderFemale,
		c.prefix + domain.GenderUnisex,
	}
	if err := c.client.Del(ctxDel, keys...).Err(); err != nil {
		c.logger.Warn("invalidar snapshot de catalogo fallo", zap.Error(err))
	}
}
