package promo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quanan/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// POST /promos (admin)
func (h *Handler) CreatePromo(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	promo, err := h.service.CreatePromo(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, promo)
}

// GET /promos/:code
func (h *Handler) ResolvePromo(c *gin.Context) {
	promo, err := h.service.ResolveActive(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, promo)
}

// GET /promos (admin)
func (h *Handler) ListPromos(c *gin.Context) {
	promos, err := h.service.ListPromos(c.Request.Context())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, promos)
}

// PATCH /promos/:id/disable (admin)
func (h *Handler) DisablePromo(c *gin.Context) {
	if err := h.service.DisablePromo(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "promo disabled"})
}
