package cart

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

func callerID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

// POST /cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := h.service.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusCreated, line)
}

type quantityRequest struct {
	LineID string `json:"line_id"`
	Delta  int    `json:"delta"`
}

// PATCH /cart/increment
func (h *Handler) IncrementQuantity(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := h.service.IncrementQuantity(c.Request.Context(), userID, req.LineID, req.Delta)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, line)
}

// PATCH /cart/decrement
func (h *Handler) DecrementQuantity(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, removed, err := h.service.DecrementQuantity(c.Request.Context(), userID, req.LineID, req.Delta)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	if removed {
		c.JSON(http.StatusOK, gin.H{"removed": true, "line_id": req.LineID})
		return
	}
	c.JSON(http.StatusOK, line)
}

// DELETE /cart/lines/:id
func (h *Handler) RemoveLine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveLine(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DELETE /cart
func (h *Handler) Clear(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	lines, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GET /cart/count
func (h *Handler) Count(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	count, err := h.service.Count(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
