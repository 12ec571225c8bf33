package service

import (
	"strings"

	"neuroscent/internal/domain"
)

// ProfileBuilder transforma respuestas crudas en un perfil olfativo.
// Transformacion pura y determinista, sin I/O.
type ProfileBuilder struct{}

// Build construye el perfil. El llamador asigna ID y TestResultID.
//
// Reglas:
//   - intensidad y longevidad (escala 1-5) se reescalan linealmente a [0,1]
//     con (rating-1)/4, asi 1 -> 0.0 y 5 -> 1.0;
//   - las familias preferidas son texto libre: se matchean por substring
//     case-insensitive contra las 7 canonicas, y cada familia matcheada
//     queda en 1.0 (presencia binaria);
//   - el resto de campos contextuales pasan sin transformar.
//
// Si ninguna respuesta matchea una familia canonica el vector queda todo en
// 0.0: el perfil sigue siendo valido, solo sin señal positiva.
func (ProfileBuilder) Build(answers domain.QuizAnswers) domain.OlfactoryProfile {
	profile := domain.OlfactoryProfile{
		RejectedFamilies: answers.RejectedFamilies,
		Emotion:          answers.Emotion,
		TimeOfDay:        answers.TimeOfDay,
		Occasions:        answers.Occasions,
		Season:           answers.Season,
		Concentration:    answers.Concentration,
		ReferencePerfume: answers.ReferencePerfume,
	}
	if profile.RejectedFamilies == nil {
		profile.RejectedFamilies = []string{}
	}

	if answers.Intensity >= 1 {
		profile.Vector.Intensity = float64(answers.Intensity-1) / 4
	}
	if answers.Longevity >= 1 {
		profile.Longevity = float64(answers.Longevity-1) / 4
	}

	for _, family := range answers.PreferredFamilies {
		normalized := strings.ReplaceAll(strings.ToLower(family), " ", "_")
		for _, canonical := range domain.CanonicalFamilies {
			if strings.Contains(normalized, canonical) {
				profile.Vector.SetFamily(canonical, 1.0)
			}
		}
	}

	return profile
}
