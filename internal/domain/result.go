package domain

import "time"

// Niveles cualitativos de afinidad. Bandas inclusivas en el limite inferior.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelModerate  = "moderate"
	LevelLow       = "low"
)

// AffinityLevel mapea un score [0,100] a su banda cualitativa.
func AffinityLevel(score float64) string {
	switch {
	case score >= 80:
		return LevelExcellent
	case score >= 60:
		return LevelGood
	case score >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

// TestResult guarda un test completado con sus respuestas crudas.
type TestResult struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Answers     QuizAnswers `json:"answers"`
	CompletedAt time.Time   `json:"completed_at"`
}

// AffinityResult es la copia durable de un match retornado, recuperable por
// test sin recalcular (el catalogo puede cambiar despues).
type AffinityResult struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	PerfumeID      string    `json:"perfume_id"`
	Score          float64   `json:"score"`
	Description    string    `json:"description,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AffinityMatch es un resultado efimero de ranking: perfume puntuado con su
// desglose por familia y los textos generados.
type AffinityMatch struct {
	Perfume        Perfume            `json:"perfume"`
	Score          float64            `json:"score"`
	Level          string             `json:"level"`
	Contributions  map[string]float64 `json:"-"`
	Description    string             `json:"description"`
	Recommendation string             `json:"recommendation"`
}

// MatchMetadata acompana al ranking para observabilidad; no afecta al score.
type MatchMetadata struct {
	TotalAnalyzed int `json:"total_perfumes_analyzed"`
	TopMatchCount int `json:"top_match_count"`
}
