package service

import (
	"strings"
	"sync"
	"time"
)

// QuizRateLimiter limita envios de test por session_id.
type QuizRateLimiter interface {
	Allow(sessionID string) bool
}

type memoryQuizRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	counts map[string]int
	resets map[string]time.Time
}

// NewQuizRateLimiter crea un rate limiter en memoria.
func NewQuizRateLimiter(window time.Duration, max int) QuizRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryQuizRateLimiter{
		window: window,
		max:    max,
		counts: make(map[string]int),
		resets: make(map[string]time.Time),
	}
}

func (l *memoryQuizRateLimiter) Allow(sessionID string) bool {
	key := strings.ToLower(strings.TrimSpace(sessionID))
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	if reset, ok := l.resets[key]; !ok || now.After(reset) {
		l.counts[key] = 0
		l.resets[key] = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.max
}
