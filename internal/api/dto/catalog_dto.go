package dto

import "reviewhub/internal/api/models"

// CreateCategoryRequest also serves genres; both share the name+slug shape.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{Name: category.Name, Slug: category.Slug}
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(genre *models.Genre) *GenreResponse {
	return &GenreResponse{Name: genre.Name, Slug: genre.Slug}
}
