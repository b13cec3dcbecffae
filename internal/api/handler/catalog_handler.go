package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers category and genre endpoints. Reads are public;
// writes go through the strict auth middleware and the service's own
// permission check.
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", requireAuth, h.CreateCategory)
		categories.DELETE("/:slug", requireAuth, h.DeleteCategory)
	}

	genres := router.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.POST("", requireAuth, h.CreateGenre)
		genres.DELETE("/:slug", requireAuth, h.DeleteGenre)
	}
}

// ListCategories returns categories, optionally filtered by name substring.
// GET /api/v1/categories?search=&page=&page_size=
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.catalogService.ListCategories(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory creates a category (admin only).
// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.catalogService.CreateCategory(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteCategory removes a category by slug (admin only).
// DELETE /api/v1/categories/:slug
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	err := h.catalogService.DeleteCategory(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGenres returns genres, optionally filtered by name substring.
// GET /api/v1/genres?search=&page=&page_size=
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.catalogService.ListGenres(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGenre creates a genre (admin only).
// POST /api/v1/genres
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.catalogService.CreateGenre(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteGenre removes a genre by slug (admin only).
// DELETE /api/v1/genres/:slug
func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	err := h.catalogService.DeleteGenre(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
