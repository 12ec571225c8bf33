package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminService autentica al administrador unico del catalogo, configurado
// por variables de entorno (email + hash bcrypt de la password).
type AdminService struct {
	logger       *zap.Logger
	email        string
	passwordHash string
}

func NewAdminService(logger *zap.Logger, email, passwordHash string) *AdminService {
	return &AdminService{
		logger:       logger,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: strings.TrimSpace(passwordHash),
	}
}

// Configured indica si hay credenciales de admin cargadas.
func (s *AdminService) Configured() bool {
	return s.email != "" && s.passwordHash != ""
}

// Authenticate valida email y password. La comparacion de email es de
// tiempo constante sobre digests para no filtrar informacion por timing.
func (s *AdminService) Authenticate(email, password string) error {
	if !s.Configured() {
		return ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}

	wantDigest := sha256.Sum256([]byte(s.email))
	gotDigest := sha256.Sum256([]byte(email))
	if subtle.ConstantTimeCompare(wantDigest[:], gotDigest[:]) != 1 {
		// Igual corremos bcrypt para emparejar el costo de ambas ramas.
		_ = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
