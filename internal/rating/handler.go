package rating

import (
	"net/http"
	"strconv"

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

// POST /ratings
func (h *Handler) SubmitRating(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	submitted, err := h.service.SubmitRating(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, submitted)
}

// DELETE /ratings/:id
func (h *Handler) DeleteRating(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRating(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}

// GET /ratings?pageIndex=&pageSize=
func (h *Handler) CheckUserRating(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	pageIndex, _ := strconv.Atoi(c.DefaultQuery("pageIndex", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	ratings, total, err := h.service.CheckUserRating(c.Request.Context(), userID, pageIndex, pageSize)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      ratings,
		"total":     total,
		"pageIndex": pageIndex,
		"pageSize":  pageSize,
	})
}
