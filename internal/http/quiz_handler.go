package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"neuroscent/internal/domain"
	"neuroscent/internal/service"
)

// QuizHandler expone el flujo de test olfativo.
type QuizHandler struct {
	logger *zap.Logger
	quiz   *service.QuizService
}

func NewQuizHandler(logger *zap.Logger, quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{logger: logger, quiz: quiz}
}

// CalculateAffinity maneja POST /test/calculate.
func (h *QuizHandler) CalculateAffinity(c *gin.Context) {
	var answers domain.QuizAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		h.logger.Warn("invalid test payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if answers.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	outcome, err := h.quiz.SubmitQuiz(c.Request.Context(), answers)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid test answers",
				"errors": validationErr.Errors,
			})
		case errors.Is(err, service.ErrQuizRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, try again later"})
		case errors.Is(err, service.ErrNoCandidates):
			c.JSON(http.StatusNotFound, gin.H{"error": "no perfumes available for matching"})
		default:
			h.logger.Error("calculate affinity failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate affinity"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   formatOutcome(outcome, true),
	})
}

// GetTestResult maneja GET /test/:id. Devuelve las copias persistidas, sin
// recalcular.
func (h *QuizHandler) GetTestResult(c *gin.Context) {
	outcome, err := h.quiz.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "test result not found"})
			return
		}
		h.logger.Error("get test result failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load test result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   formatOutcome(outcome, false),
	})
}

func formatOutcome(outcome service.QuizOutcome, includeTotal bool) gin.H {
	results := make([]gin.H, 0, len(outcome.Matches))
	for _, match := range outcome.Matches {
		results = append(results, gin.H{
			"perfume": gin.H{
				"id":           match.Perfume.ID,
				"name":         match.Perfume.Name,
				"brand":        match.Perfume.Brand,
				"description":  match.Perfume.Description,
				"image_url":    match.Perfume.ImageURL,
				"purchase_url": match.Perfume.PurchaseURL,
			},
			"affinity": gin.H{
				"score":          match.Score,
				"level":          match.Level,
				"description":    match.Description,
				"recommendation": match.Recommendation,
			},
		})
	}

	metadata := gin.H{
		"top_match_count":   outcome.Metadata.TopMatchCount,
		"test_completed_at": outcome.CompletedAt,
	}
	if includeTotal {
		metadata["total_perfumes_analyzed"] = outcome.Metadata.TotalAnalyzed
	}

	profile := outcome.Profile
	return gin.H{
		"test_id":    outcome.TestID,
		"user_id":    outcome.UserID,
		"profile_id": profile.ID,
		"olfactory_profile": gin.H{
			"id":        profile.ID,
			"intensity": profile.Vector.Intensity,
			"citrus":    profile.Vector.Citrus,
			"floral":    profile.Vector.Floral,
			"woody":     profile.Vector.Woody,
			"sweet":     profile.Vector.Sweet,
			"spicy":     profile.Vector.Spicy,
			"green":     profile.Vector.Green,
			"aquatic":   profile.Vector.Aquatic,
			"emotion":   profile.Emotion,
			"season":    profile.Season,
		},
		"results":  results,
		"metadata": metadata,
	}
}
