package domain

// QuizAnswers son las respuestas crudas del test olfativo, tal como llegan
// del cliente. Los campos q1 y q8 usan escala entera 1-5; cero significa
// "sin responder" y lo detecta el validador.
type QuizAnswers struct {
	Gender            string   `json:"q0_gender"`
	Intensity         int      `json:"q1_intensity"`
	PreferredFamilies []string `json:"q2_preferred_families"`
	RejectedFamilies  []string `json:"q3_rejected_families"`
	Emotion           string   `json:"q4_emotion"`
	TimeOfDay         []string `json:"q5_time_of_day"`
	Occasions         []string `json:"q6_occasions"`
	Season            string   `json:"q7_season"`
	Longevity         int      `json:"q8_longevity"`
	Concentration     string   `json:"q9_concentration"`
	ReferencePerfume  string   `json:"q10_reference"`
	SessionID         string   `json:"session_id"`
}
