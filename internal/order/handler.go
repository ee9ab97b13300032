package order

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

// POST /orders
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	placed, err := h.service.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, placed)
}

// GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	found, err := h.service.GetOrder(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, found)
}

// GET /orders?pageIndex=&pageSize=
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	pageIndex, _ := strconv.Atoi(c.DefaultQuery("pageIndex", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	orders, total, err := h.service.ListByCustomer(c.Request.Context(), userID, pageIndex, pageSize)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      orders,
		"total":     total,
		"pageIndex": pageIndex,
		"pageSize":  pageSize,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PATCH /orders/:id/status (store or admin)
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, updated)
}
