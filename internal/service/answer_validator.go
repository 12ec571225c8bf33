package service

import "neuroscent/internal/domain"

// AnswerValidator aplica chequeos estructurales y de rango sobre las
// respuestas del test antes de construir el perfil.
type AnswerValidator struct{}

// Validate devuelve la lista completa de errores (vacia si todo es valido).
// Los chequeos son independientes: no corta en el primer fallo, el cliente
// recibe todos los problemas de una vez.
func (AnswerValidator) Validate(answers domain.QuizAnswers) []string {
	var errs []string

	if answers.Intensity == 0 {
		errs = append(errs, "Missing required answer: q1_intensity")
	} else if answers.Intensity < 1 || answers.Intensity > 5 {
		errs = append(errs, "Intensity must be between 1 and 5")
	}

	if len(answers.PreferredFamilies) == 0 {
		errs = append(errs, "Missing required answer: q2_preferred_families")
	}
	if answers.Emotion == "" {
		errs = append(errs, "Missing required answer: q4_emotion")
	}
	if len(answers.TimeOfDay) == 0 {
		errs = append(errs, "Missing required answer: q5_time_of_day")
	}
	if len(answers.Occasions) == 0 {
		errs = append(errs, "Missing required answer: q6_occasions")
	}
	if answers.Season == "" {
		errs = append(errs, "Missing required answer: q7_season")
	}

	if answers.Longevity == 0 {
		errs = append(errs, "Missing required answer: q8_longevity")
	} else if answers.Longevity < 1 || answers.Longevity > 5 {
		errs = append(errs, "Longevity must be between 1 and 5")
	}

	return errs
}
