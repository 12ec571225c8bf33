package domain

import "time"

// User representa un visitante anonimo identificado por session_id.
// Un usuario puede completar varios tests en sesiones distintas.
type User struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
