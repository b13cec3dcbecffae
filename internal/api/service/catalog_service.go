package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/api/access"
	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/cache"

	"gorm.io/gorm"
)

// CatalogService manages categories and genres. Both are plain name+slug
// lookups with admin-only writes, so they share one service.
type CatalogService interface {
	CreateCategory(ctx context.Context, actor *models.User, name, slug string) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor *models.User, slug string) error
	ListCategories(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)

	CreateGenre(ctx context.Context, actor *models.User, name, slug string) (*dto.GenreResponse, error)
	DeleteGenre(ctx context.Context, actor *models.User, slug string) error
	ListGenres(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
}

type catalogService struct {
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	titleCache *cache.TitleCache
}

func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository, titleCache *cache.TitleCache) CatalogService {
	return &catalogService{
		categories: categories,
		genres:     genres,
		titleCache: titleCache,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, actor *models.User, name, slug string) (*dto.CategoryResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindCategory}) {
		return nil, apperr.Permission("only administrators may manage categories")
	}
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	if err := models.ValidateSlug(slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("a category with this slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return dto.FromModelToCategoryResponse(category), nil
}

// DeleteCategory drops the category; titles referencing it are nullified by
// the store, so any cached title payloads are stale and get flushed.
func (s *catalogService) DeleteCategory(ctx context.Context, actor *models.User, slug string) error {
	if !access.Decide(actor, access.ActionDelete, access.Resource{Kind: access.KindCategory}) {
		return apperr.Permission("only administrators may manage categories")
	}
	if err := s.categories.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	s.titleCache.InvalidateAll(ctx)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	categories, total, err := s.categories.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *catalogService) CreateGenre(ctx context.Context, actor *models.User, name, slug string) (*dto.GenreResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindGenre}) {
		return nil, apperr.Permission("only administrators may manage genres")
	}
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	if err := models.ValidateSlug(slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("a genre with this slug already exists")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, actor *models.User, slug string) error {
	if !access.Decide(actor, access.ActionDelete, access.Resource{Kind: access.KindGenre}) {
		return apperr.Permission("only administrators may manage genres")
	}
	if err := s.genres.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("genre")
		}
		return fmt.Errorf("delete genre: %w", err)
	}
	s.titleCache.InvalidateAll(ctx)
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	genres, total, err := s.genres.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}
