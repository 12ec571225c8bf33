package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"neuroscent/internal/domain"
	"neuroscent/internal/repository"
)

// PerfumeHandler expone el catalogo publico y las mutaciones de admin.
// invalidate borra el snapshot cacheado del catalogo tras cada mutacion.
type PerfumeHandler struct {
	logger     *zap.Logger
	perfumes   repository.PerfumeRepository
	invalidate func(c *gin.Context)
}

func NewPerfumeHandler(logger *zap.Logger, perfumes repository.PerfumeRepository, invalidate func(c *gin.Context)) *PerfumeHandler {
	if invalidate == nil {
		invalidate = func(*gin.Context) {}
	}
	return &PerfumeHandler{logger: logger, perfumes: perfumes, invalidate: invalidate}
}

// ListPerfumes maneja GET /perfumes con paginacion.
func (h *PerfumeHandler) ListPerfumes(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	perfumes, err := h.perfumes.List(c.Request.Context(), skip, limit, activeOnly)
	if err != nil {
		h.logger.Error("list perfumes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list perfumes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": perfumes})
}

// GetPerfume maneja GET /perfumes/:id (incluye vector si existe).
func (h *PerfumeHandler) GetPerfume(c *gin.Context) {
	id := c.Param("id")
	perfume, err := h.perfumes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "perfume not found"})
			return
		}
		h.logger.Error("get perfume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load perfume"})
		return
	}

	data := gin.H{"perfume": perfume}
	vector, err := h.perfumes.GetVector(c.Request.Context(), id)
	if err == nil {
		data["vector"] = vector
	} else if !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Error("get perfume vector failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load perfume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// ListSimilar maneja GET /perfumes/:id/similar por distancia de embedding.
func (h *PerfumeHandler) ListSimilar(c *gin.Context) {
	k, _ := strconv.Atoi(c.DefaultQuery("k", "5"))
	similar, err := h.perfumes.ListSimilar(c.Request.Context(), c.Param("id"), k)
	if err != nil {
		h.logger.Error("list similar perfumes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar perfumes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": similar})
}

type vectorRequest struct {
	Intensity         float64  `json:"intensity" binding:"required"`
	Citrus            float64  `json:"citrus"`
	Floral            float64  `json:"floral"`
	Woody             float64  `json:"woody"`
	Sweet             float64  `json:"sweet"`
	Spicy             float64  `json:"spicy"`
	Green             float64  `json:"green"`
	Aquatic           float64  `json:"aquatic"`
	SuitableOccasions []string `json:"suitable_occasions"`
	SuitableTimes     []string `json:"suitable_times"`
	Season            string   `json:"season"`
	Longevity         float64  `json:"longevity"`
	Concentration     string   `json:"concentration"`
}

func (r vectorRequest) toDomain(perfumeID string) domain.PerfumeVector {
	occasions := r.SuitableOccasions
	if occasions == nil {
		occasions = []string{}
	}
	times := r.SuitableTimes
	if times == nil {
		times = []string{}
	}
	return domain.PerfumeVector{
		ID:        uuid.NewString(),
		PerfumeID: perfumeID,
		Vector: domain.FeatureVector{
			Intensity: r.Intensity,
			Citrus:    r.Citrus,
			Floral:    r.Floral,
			Woody:     r.Woody,
			Sweet:     r.Sweet,
			Spicy:     r.Spicy,
			Green:     r.Green,
			Aquatic:   r.Aquatic,
		},
		SuitableOccasions: occasions,
		SuitableTimes:     times,
		Season:            r.Season,
		Longevity:         r.Longevity,
		Concentration:     r.Concentration,
		UpdatedAt:         time.Now().UTC(),
	}
}

// CreatePerfume maneja POST /admin/perfumes.
func (h *PerfumeHandler) CreatePerfume(c *gin.Context) {
	var req struct {
		Name        string         `json:"name" binding:"required"`
		Brand       string         `json:"brand" binding:"required"`
		Description string         `json:"description"`
		ImageURL    string         `json:"image_url"`
		PurchaseURL string         `json:"purchase_url"`
		Gender      string         `json:"gender"`
		IsActive    *bool          `json:"is_active"`
		Vector      *vectorRequest `json:"vector"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create perfume request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	gender := req.Gender
	if gender == "" {
		gender = domain.GenderUnisex
	}
	if gender != domain.GenderMale && gender != domain.GenderFemale && gender != domain.GenderUnisex {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be male, female or unisex"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	perfume := domain.Perfume{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PurchaseURL: req.PurchaseURL,
		Gender:      gender,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.perfumes.Create(c.Request.Context(), perfume); err != nil {
		h.logger.Error("create perfume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create perfume"})
		return
	}

	if req.Vector != nil {
		if err := h.perfumes.UpsertVector(c.Request.Context(), req.Vector.toDomain(perfume.ID)); err != nil {
			h.logger.Error("create perfume vector failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save perfume vector"})
			return
		}
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"perfume": perfume}})
}

// UpdatePerfume maneja PUT /admin/perfumes/:id.
func (h *PerfumeHandler) UpdatePerfume(c *gin.Context) {
	id := c.Param("id")
	current, err := h.perfumes.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "perfume not found"})
			return
		}
		h.logger.Error("load perfume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update perfume"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Brand       *string `json:"brand"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
		PurchaseURL *string `json:"purchase_url"`
		Gender      *string `json:"gender"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update perfume request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Brand != nil {
		current.Brand = *req.Brand
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}
	if req.PurchaseURL != nil {
		current.PurchaseURL = *req.PurchaseURL
	}
	if req.Gender != nil {
		if *req.Gender != domain.GenderMale && *req.Gender != domain.GenderFemale && *req.Gender != domain.GenderUnisex {
			c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be male, female or unisex"})
			return
		}
		current.Gender = *req.Gender
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := h.perfumes.Update(c.Request.Context(), current); err != nil {
		h.logger.Error("update perfume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update perfume"})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"perfume": current}})
}

// UpsertVector maneja PUT /admin/perfumes/:id/vector.
func (h *PerfumeHandler) UpsertVector(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.perfumes.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "perfume not found"})
			return
		}
		h.logger.Error("load perfume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save perfume vector"})
		return
	}

	var req vectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid vector request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	vector := req.toDomain(id)
	if err := h.perfumes.UpsertVector(c.Request.Context(), vector); err != nil {
		h.logger.Error("upsert vector failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save perfume vector"})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"vector": vector}})
}
