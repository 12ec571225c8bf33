package domain

import "time"

// Familias olfativas canonicas. El orden es el mismo que usa el vector
// numerico (sin contar la intensidad, que va primero).
const (
	FamilyCitrus  = "citrus"
	FamilyFloral  = "floral"
	FamilyWoody   = "woody"
	FamilySweet   = "sweet"
	FamilySpicy   = "spicy"
	FamilyGreen   = "green"
	FamilyAquatic = "aquatic"
)

// CanonicalFamilies lista las 7 familias en orden de vector.
var CanonicalFamilies = []string{
	FamilyCitrus,
	FamilyFloral,
	FamilyWoody,
	FamilySweet,
	FamilySpicy,
	FamilyGreen,
	FamilyAquatic,
}

const (
	SeasonSpring  = "spring"
	SeasonSummer  = "summer"
	SeasonAutumn  = "autumn"
	SeasonWinter  = "winter"
	SeasonAllYear = "all_year"
)

const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeNight     = "night"
)

// FeatureVector representa las 8 dimensiones olfativas en escala 0.0 - 1.0.
// La intensidad es obligatoria; el resto por defecto es ausencia (0.0).
type FeatureVector struct {
	Intensity float64 `json:"intensity"`
	Citrus    float64 `json:"citrus"`
	Floral    float64 `json:"floral"`
	Woody     float64 `json:"woody"`
	Sweet     float64 `json:"sweet"`
	Spicy     float64 `json:"spicy"`
	Green     float64 `json:"green"`
	Aquatic   float64 `json:"aquatic"`
}

// Values devuelve el vector numerico para calculos de similitud.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.Intensity,
		v.Citrus,
		v.Floral,
		v.Woody,
		v.Sweet,
		v.Spicy,
		v.Green,
		v.Aquatic,
	}
}

// Family devuelve el valor de una familia canonica (0.0 si no existe).
func (v FeatureVector) Family(name string) float64 {
	switch name {
	case FamilyCitrus:
		return v.Citrus
	case FamilyFloral:
		return v.Floral
	case FamilyWoody:
		return v.Woody
	case FamilySweet:
		return v.Sweet
	case FamilySpicy:
		return v.Spicy
	case FamilyGreen:
		return v.Green
	case FamilyAquatic:
		return v.Aquatic
	}
	return 0.0
}

// SetFamily fija el valor de una familia canonica.
func (v *FeatureVector) SetFamily(name string, value float64) {
	switch name {
	case FamilyCitrus:
		v.Citrus = value
	case FamilyFloral:
		v.Floral = value
	case FamilyWoody:
		v.Woody = value
	case FamilySweet:
		v.Sweet = value
	case FamilySpicy:
		v.Spicy = value
	case FamilyGreen:
		v.Green = value
	case FamilyAquatic:
		v.Aquatic = value
	}
}

// OlfactoryProfile es el perfil derivado de un test completado.
// Inmutable una vez construido: pertenece a exactamente un TestResult.
type OlfactoryProfile struct {
	ID           string        `json:"id"`
	TestResultID string        `json:"test_result_id"`
	Vector       FeatureVector `json:"vector"`

	RejectedFamilies []string `json:"rejected_families"`
	Emotion          string   `json:"emotion,omitempty"`
	TimeOfDay        []string `json:"time_of_day"`
	Occasions        []string `json:"occasions"`
	Season           string   `json:"season,omitempty"`
	Longevity        float64  `json:"longevity"`
	Concentration    string   `json:"concentration,omitempty"`
	ReferencePerfume string   `json:"reference_perfume,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
