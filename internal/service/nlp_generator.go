package service

import (
	"sort"
	"strings"

	"neuroscent/internal/domain"
)

// NLPGenerator arma descripciones y recomendaciones personalizadas a partir
// de fragmentos de plantilla. Seleccion mecanica, sin LLM.
type NLPGenerator struct{}

var familyDescriptions = map[string]string{
	domain.FamilyCitrus:  "notas cítricas refrescantes",
	domain.FamilyFloral:  "un corazón floral elegante",
	domain.FamilyWoody:   "una base amaderada cálida",
	domain.FamilySweet:   "toques dulces envolventes",
	domain.FamilySpicy:   "especias que añaden carácter",
	domain.FamilyGreen:   "frescura verde natural",
	domain.FamilyAquatic: "brisa acuática revitalizante",
}

var emotionTexts = map[string]string{
	"freshness":  "Te aportará frescura y energía",
	"elegance":   "Proyectará elegancia y sofisticación",
	"sensuality": "Evocará sensualidad y calidez",
	"calm":       "Transmitirá calma y serenidad",
	"joy":        "Inspirará alegría y optimismo",
	"confidence": "Reforzará confianza y poder",
}

var seasonTexts = map[string]string{
	domain.SeasonSpring:  "primavera",
	domain.SeasonSummer:  "verano",
	domain.SeasonAutumn:  "otoño",
	domain.SeasonWinter:  "invierno",
	domain.SeasonAllYear: "todo el año",
}

// GenerateDescription produce la descripcion sensorial personalizada:
// intro por banda de score, las 2 familias dominantes (solo si su
// contribucion supera 0.3), nota de intensidad y cierre emocional.
func (NLPGenerator) GenerateDescription(profile domain.OlfactoryProfile, vector domain.PerfumeVector, score float64, contributions map[string]float64) string {
	var intro string
	switch {
	case score >= 80:
		intro = "Este perfume encaja perfectamente con tus preferencias."
	case score >= 60:
		intro = "Este perfume tiene buena compatibilidad contigo."
	case score >= 40:
		intro = "Este perfume podría interesarte, aunque no es tu match ideal."
	default:
		intro = "Este perfume tiene características diferentes a tus preferencias."
	}

	var sensoryParts []string
	for _, family := range dominantFamilies(contributions, 2) {
		if contributions[family] > 0.3 {
			if text, ok := familyDescriptions[family]; ok {
				sensoryParts = append(sensoryParts, text)
			}
		}
	}

	var b strings.Builder
	if len(sensoryParts) > 0 {
		b.WriteString(intro + " Destaca por " + strings.Join(sensoryParts, ", ") + ". ")
	} else {
		b.WriteString(intro + " ")
	}

	if vector.Vector.Intensity > 0.7 {
		b.WriteString("Su presencia es intensa y duradera. ")
	} else if vector.Vector.Intensity > 0 && vector.Vector.Intensity < 0.3 {
		b.WriteString("Es una fragancia sutil y discreta. ")
	}

	if text, ok := emotionTexts[profile.Emotion]; ok {
		b.WriteString(text + ".")
	}

	return b.String()
}

// GenerateRecommendation produce la recomendacion de uso segun horarios,
// ocasiones y estacion del perfume.
func (NLPGenerator) GenerateRecommendation(vector domain.PerfumeVector) string {
	var recommendations []string

	times := make(map[string]struct{}, len(vector.SuitableTimes))
	for _, t := range vector.SuitableTimes {
		times[t] = struct{}{}
	}
	if _, ok := times[domain.TimeMorning]; ok {
		recommendations = append(recommendations, "ideal para empezar el día")
	}
	if _, ok := times[domain.TimeNight]; ok {
		recommendations = append(recommendations, "perfecto para la noche")
	}

	occasions := make(map[string]struct{}, len(vector.SuitableOccasions))
	for _, o := range vector.SuitableOccasions {
		occasions[o] = struct{}{}
	}
	if _, ok := occasions["work"]; ok {
		recommendations = append(recommendations, "apropiado para el trabajo")
	}
	if _, ok := occasions["special_events"]; ok {
		recommendations = append(recommendations, "excelente para eventos especiales")
	}
	if _, ok := occasions["romantic"]; ok {
		recommendations = append(recommendations, "romántico para citas")
	}

	if text, ok := seasonTexts[vector.Season]; ok {
		recommendations = append(recommendations, "mejor en "+text)
	}

	if len(recommendations) == 0 {
		return "Versátil para múltiples ocasiones."
	}
	return "Recomendado " + strings.Join(recommendations, ", ") + "."
}

// dominantFamilies ordena las familias por contribucion descendente y
// devuelve las primeras n. Desempata por nombre para salida determinista.
func dominantFamilies(contributions map[string]float64, n int) []string {
	families := make([]string, 0, len(contributions))
	for family := range contributions {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool {
		if contributions[families[i]] != contributions[families[j]] {
			return contributions[families[i]] > contributions[families[j]]
		}
		return families[i] < families[j]
	})
	if len(families) > n {
		families = families[:n]
	}
	return families
}
