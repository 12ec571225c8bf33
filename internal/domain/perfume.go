package domain

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"
)

// Perfume es la identidad de un item del catalogo.
type Perfume struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PurchaseURL string    `json:"purchase_url,omitempty"`
	Gender      string    `json:"gender"` // "male", "female", "unisex"
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// PerfumeVector es la caracterizacion olfativa 1:1 de un perfume.
// Un perfume activo sin vector no es puntuable: se salta durante el ranking.
type PerfumeVector struct {
	ID        string        `json:"id"`
	PerfumeID string        `json:"perfume_id"`
	Vector    FeatureVector `json:"vector"`

	SuitableOccasions []string `json:"suitable_occasions"`
	SuitableTimes     []string `json:"suitable_times"`
	Season            string   `json:"season,omitempty"`
	Longevity         float64  `json:"longevity"`
	Concentration     string   `json:"concentration,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Embedding convierte las 8 dimensiones al tipo pgvector para la columna
// vector(8) y las busquedas por distancia.
func (pv PerfumeVector) Embedding() pgvector.Vector {
	values := pv.Vector.Values()
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return pgvector.NewVector(out)
}

// CatalogEntry agrupa un perfume con su vector (nil si aun no tiene).
type CatalogEntry struct {
	Perfume Perfume        `json:"perfume"`
	Vector  *PerfumeVector `json:"vector,omitempty"`
}

// EligibleFor indica si el perfume aplica al genero declarado del usuario.
// Unisex siempre es elegible.
func (p Perfume) EligibleFor(gender string) bool {
	return p.Gender == GenderUnisex || p.Gender == gender
}
