package service

import (
	"math"
	"strings"

	"neuroscent/internal/domain"
)

// Pesos de los factores del score de afinidad. Deben sumar 1.0.
const (
	weightVector      = 0.40
	weightContext     = 0.30
	weightPersistence = 0.20
	weightEmotion     = 0.10
)

// Umbral de descalificacion dura y factor de penalizacion blanda.
const (
	rejectionThreshold = 0.7
	rejectionPenalty   = 0.3
)

// AffinityEngine calcula la afinidad entre un perfil olfativo y un perfume.
// Funcion pura: sin estado, sin I/O, mismo input -> mismo output.
type AffinityEngine struct{}

// Score devuelve la afinidad en [0,100] redondeada a 2 decimales y el mapa
// de contribuciones por familia usado para los textos explicativos.
//
// Si el solapamiento con familias rechazadas supera el umbral, el perfume
// queda descalificado: score 0.0 y mapa vacio, sin computar el resto.
func (e AffinityEngine) Score(profile domain.OlfactoryProfile, vector domain.PerfumeVector) (float64, map[string]float64) {
	rejectionScore := e.rejectionScore(profile.RejectedFamilies, vector.Vector)
	if rejectionScore > rejectionThreshold {
		return 0.0, map[string]float64{}
	}

	vectorScore := cosineSimilarity(profile.Vector.Values(), vector.Vector.Values())

	contextScore := e.contextMatch(
		profile.Occasions, profile.TimeOfDay, profile.Season,
		vector.SuitableOccasions, vector.SuitableTimes, vector.Season,
	)

	intensityMatch := 1 - math.Abs(orNeutral(profile.Vector.Intensity)-orNeutral(vector.Vector.Intensity))
	longevityMatch := 1 - math.Abs(orNeutral(profile.Longevity)-orNeutral(vector.Longevity))
	persistenceScore := (intensityMatch + longevityMatch) / 2

	// Emocion: constante neutral, reservado para refinamiento futuro.
	emotionScore := 0.5

	raw := vectorScore*weightVector +
		contextScore*weightContext +
		persistenceScore*weightPersistence +
		emotionScore*weightEmotion

	final := raw * 100
	final = final * (1 - rejectionScore*rejectionPenalty)

	contributions := make(map[string]float64, len(domain.CanonicalFamilies))
	for _, family := range domain.CanonicalFamilies {
		contributions[family] = math.Min(profile.Vector.Family(family)*vector.Vector.Family(family), 1.0)
	}

	return round2(final), contributions
}

// rejectionScore mide el solapamiento entre familias rechazadas y el vector
// del perfume. Cada etiqueta rechazada se matchea por substring contra las
// familias canonicas; la intensidad acumulada se normaliza por la cantidad
// de etiquetas.
func (AffinityEngine) rejectionScore(rejected []string, vector domain.FeatureVector) float64 {
	if len(rejected) == 0 {
		return 0.0
	}

	rejectionIntensity := 0.0
	for _, family := range rejected {
		lower := strings.ToLower(family)
		for _, canonical := range domain.CanonicalFamilies {
			if strings.Contains(lower, canonical) {
				rejectionIntensity += vector.Family(canonical)
			}
		}
	}

	return math.Min(rejectionIntensity/math.Max(float64(len(rejected)), 1), 1.0)
}

// contextMatch combina solapamiento de ocasiones, horarios y estacion.
// Dato faltante puntua neutral 0.5. La estacion solo da credito completo en
// match exacto o cuando el perfume es all_year; un desajuste entre
// estaciones presentes tambien vale 0.5 (politica del producto, no un bug).
func (AffinityEngine) contextMatch(userOccasions, userTimes []string, userSeason string, perfumeOccasions, perfumeTimes []string, perfumeSeason string) float64 {
	occasionScore := overlapScore(userOccasions, perfumeOccasions)
	timeScore := overlapScore(userTimes, perfumeTimes)

	seasonScore := 0.5
	if userSeason != "" && perfumeSeason != "" {
		if userSeason == perfumeSeason || perfumeSeason == domain.SeasonAllYear {
			seasonScore = 1.0
		}
	}

	return occasionScore*0.4 + timeScore*0.4 + seasonScore*0.2
}

// overlapScore es |user ∩ perfume| / max(|user|, 1), o 0.5 neutral si
// cualquiera de los dos conjuntos esta vacio.
func overlapScore(user, perfume []string) float64 {
	if len(user) == 0 || len(perfume) == 0 {
		return 0.5
	}
	set := make(map[string]struct{}, len(perfume))
	for _, v := range perfume {
		set[v] = struct{}{}
	}
	matches := 0
	seen := make(map[string]struct{}, len(user))
	for _, v := range user {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			matches++
		}
	}
	return float64(matches) / math.Max(float64(len(user)), 1)
}

// cosineSimilarity es dot/(‖a‖·‖b‖); 0.0 si alguna magnitud es cero.
// Con componentes no negativas el resultado queda en [0,1].
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// orNeutral resuelve el valor ausente (cero) a 0.5 para que un dato faltante
// penalice a medio rango y no al extremo.
func orNeutral(v float64) float64 {
	if v == 0 {
		return 0.5
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
