package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quanan/internal/apperr"
)

type Handler struct {
	service *Service
	kind    ItemKind
}

// NewHandler binds one handler per item kind so /foods and /drinks share
// the same code path.
func NewHandler(service *Service, kind ItemKind) *Handler {
	return &Handler{service: service, kind: kind}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var spec ItemSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), h.kind, spec)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var spec ItemSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), spec)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItemOfKind(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) ListByRestaurant(c *gin.Context) {
	pageIndex, pageSize := pageParams(c)

	items, total, err := h.service.ListByRestaurant(
		c.Request.Context(),
		c.Param("restaurantId"),
		h.kind,
		pageIndex,
		pageSize,
	)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, pagedResponse(items, total, pageIndex, pageSize))
}

func (h *Handler) ListByCategoryAndCode(c *gin.Context) {
	pageIndex, pageSize := pageParams(c)

	items, total, err := h.service.ListByCategoryAndCode(
		c.Request.Context(),
		c.Query("category"),
		c.Query("code"),
		pageIndex,
		pageSize,
	)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, pagedResponse(items, total, pageIndex, pageSize))
}

func (h *Handler) SearchItems(c *gin.Context) {
	pageIndex, pageSize := pageParams(c)

	items, total, err := h.service.SearchItems(
		c.Request.Context(),
		c.Query("q"),
		pageIndex,
		pageSize,
	)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, pagedResponse(items, total, pageIndex, pageSize))
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	var req struct {
		IsAvailable bool `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), c.Param("id"), req.IsAvailable); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func pageParams(c *gin.Context) (int, int) {
	pageIndex, _ := strconv.Atoi(c.DefaultQuery("pageIndex", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return pageIndex, pageSize
}

func pagedResponse(items []Item, total, pageIndex, pageSize int) gin.H {
	totalPages := (total + pageSize - 1) / pageSize
	return gin.H{
		"pageIndex":  pageIndex,
		"pageSize":   pageSize,
		"totalItems": total,
		"totalPages": totalPages,
		"items":      items,
	}
}
