package main

import (
	"context"
	"log"
	"time"

	"neuroscent/internal/config"
	"neuroscent/internal/db"
	"neuroscent/internal/domain"
	"neuroscent/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type seedEntry struct {
	perfume domain.Perfume
	vector  domain.PerfumeVector
}

// Carga inicial del catalogo de perfumes arabes con sus vectores olfativos.
// Idempotente: se salta los perfumes que ya existen por nombre y marca.
func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	repo := repository.NewPgPerfumeRepository(pool)

	existing, err := repo.List(ctx, 0, 500, false)
	if err != nil {
		logger.Fatal("list perfumes", zap.Error(err))
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Brand+"|"+p.Name] = struct{}{}
	}

	created := 0
	for _, entry := range catalogSeed() {
		if _, ok := known[entry.perfume.Brand+"|"+entry.perfume.Name]; ok {
			continue
		}
		if err := repo.Create(ctx, entry.perfume); err != nil {
			logger.Error("create perfume", zap.String("name", entry.perfume.Name), zap.Error(err))
			continue
		}
		if err := repo.UpsertVector(ctx, entry.vector); err != nil {
			logger.Error("upsert vector", zap.String("name", entry.perfume.Name), zap.Error(err))
			continue
		}
		created++
	}

	logger.Info("seed finished", zap.Int("created", created), zap.Int("skipped", len(catalogSeed())-created))
}

func newEntry(name, brand, description, gender string, vec domain.FeatureVector, occasions, times []string, season string, longevity float64, concentration string) seedEntry {
	now := time.Now().UTC()
	perfumeID := uuid.NewString()
	return seedEntry{
		perfume: domain.Perfume{
			ID:          perfumeID,
			Name:        name,
			Brand:       brand,
			Description: description,
			Gender:      gender,
			IsActive:    true,
			CreatedAt:   now,
		},
		vector: domain.PerfumeVector{
			ID:                uuid.NewString(),
			PerfumeID:         perfumeID,
			Vector:            vec,
			SuitableOccasions: occasions,
			SuitableTimes:     times,
			Season:            season,
			Longevity:         longevity,
			Concentration:     concentration,
			UpdatedAt:         now,
		},
	}
}

func catalogSeed() []seedEntry {
	return []seedEntry{
		newEntry(
			"Bharara King", "Bharara",
			"Aromático frutal amaderado masculino popular con gran proyección y longevidad.",
			domain.GenderMale,
			domain.FeatureVector{Intensity: 0.8, Citrus: 0.3, Floral: 0.2, Woody: 0.8, Sweet: 0.6, Spicy: 0.5, Green: 0.3, Aquatic: 0.1},
			[]string{"special_events", "night", "romantic"},
			[]string{domain.TimeNight, domain.TimeAfternoon},
			domain.SeasonAutumn, 0.9, "eau_de_parfum",
		),
		newEntry(
			"Vulcan Feu", "ORIENTFRAGANCE",
			"Perfume árabe con notas tropicales y mango, dulce y exótico.",
			domain.GenderUnisex,
			domain.FeatureVector{Intensity: 0.7, Citrus: 0.4, Floral: 0.3, Woody: 0.3, Sweet: 0.9, Spicy: 0.4, Green: 0.2, Aquatic: 0.2},
			[]string{"daily", "special_events"},
			[]string{domain.TimeAfternoon, domain.TimeNight},
			domain.SeasonSummer, 0.7, "eau_de_parfum",
		),
		newEntry(
			"Club de Nuit Intense Man", "Armaf",
			"Cítrico amaderado masculino muy conocido, alternativa popular con gran rendimiento.",
			domain.GenderMale,
			domain.FeatureVector{Intensity: 0.9, Citrus: 0.7, Floral: 0.2, Woody: 0.8, Sweet: 0.4, Spicy: 0.6, Green: 0.3, Aquatic: 0.3},
			[]string{"work", "special_events", "any"},
			[]string{domain.TimeMorning, domain.TimeAfternoon, domain.TimeNight},
			domain.SeasonAllYear, 0.9, "eau_de_parfum",
		),
		newEntry(
			"9PM", "Afnan",
			"Oriental ambar masculino dulce, perfecto para la noche.",
			domain.GenderMale,
			domain.FeatureVector{Intensity: 0.8, Citrus: 0.2, Floral: 0.3, Woody: 0.7, Sweet: 0.8, Spicy: 0.7, Green: 0.1, Aquatic: 0.1},
			[]string{"night", "romantic", "special_events"},
			[]string{domain.TimeNight},
			domain.SeasonWinter, 0.8, "eau_de_parfum",
		),
		newEntry(
			"Khamrah", "Lattafa",
			"Yogurt especiado dulce con gran popularidad. Notas gourmand únicas.",
			domain.GenderUnisex,
			domain.FeatureVector{Intensity: 0.9, Citrus: 0.2, Floral: 0.2, Woody: 0.6, Sweet: 0.95, Spicy: 0.8, Green: 0.1, Aquatic: 0.0},
			[]string{"special_events", "romantic", "night"},
			[]string{domain.TimeNight},
			domain.SeasonAutumn, 0.95, "parfum",
		),
		newEntry(
			"Yum Yum", "Armaf",
			"Fragancia dulce y golosa del catálogo árabe con notas gourmand.",
			domain.GenderUnisex,
			domain.FeatureVector{Intensity: 0.7, Citrus: 0.3, Floral: 0.4, Woody: 0.3, Sweet: 0.9, Spicy: 0.3, Green: 0.1, Aquatic: 0.1},
			[]string{"daily", "romantic"},
			[]string{domain.TimeAfternoon, domain.TimeNight},
			domain.SeasonAllYear, 0.7, "eau_de_parfum",
		),
		newEntry(
			"Asad", "Lattafa",
			"Ambar especiado fuerte para hombre, presencia imponente.",
			domain.GenderMale,
			domain.FeatureVector{Intensity: 0.95, Citrus: 0.2, Floral: 0.1, Woody: 0.8, Sweet: 0.6, Spicy: 0.9, Green: 0.1, Aquatic: 0.0},
			[]string{"special_events", "night"},
			[]string{domain.TimeNight},
			domain.SeasonWinter, 0.9, "parfum",
		),
		newEntry(
			"Yara Candy", "Lattafa",
			"Dulce y powdery femenino con notas de caramelo y flores suaves.",
			domain.GenderFemale,
			domain.FeatureVector{Intensity: 0.6, Citrus: 0.2, Floral: 0.6, Woody: 0.2, Sweet: 0.95, Spicy: 0.2, Green: 0.1, Aquatic: 0.1},
			[]string{"daily", "romantic"},
			[]string{domain.TimeAfternoon, domain.TimeNight},
			domain.SeasonSpring, 0.7, "eau_de_parfum",
		),
		newEntry(
			"Yara", "Lattafa",
			"Muy vendido en mercados globales, floral dulce femenino elegante.",
			domain.GenderFemale,
			domain.FeatureVector{Intensity: 0.7, Citrus: 0.3, Floral: 0.8, Woody: 0.3, Sweet: 0.7, Spicy: 0.3, Green: 0.2, Aquatic: 0.2},
			[]string{"work", "daily", "special_events"},
			[]string{domain.TimeMorning, domain.TimeAfternoon, domain.TimeNight},
			domain.SeasonAllYear, 0.8, "eau_de_parfum",
		),
	}
}
