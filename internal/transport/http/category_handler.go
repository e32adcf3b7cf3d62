package handlers

import (
	"net/http"

	"coursehub/internal/application/usecase"
	"coursehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	catalog *usecase.CatalogUseCase
}

func NewCategoryHandler(catalog *usecase.CatalogUseCase) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	category, err := h.catalog.CreateCategory(c, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created",
		"category": category,
	})
}
