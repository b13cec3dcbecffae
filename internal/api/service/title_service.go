package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/api/access"
	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/cache"

	"gorm.io/gorm"
)

type TitleService interface {
	CreateTitle(ctx context.Context, actor *models.User, req dto.TitleWriteRequest) (*dto.TitleResponse, error)
	UpdateTitle(ctx context.Context, actor *models.User, id int64, req dto.TitleUpdateRequest) (*dto.TitleResponse, error)
	DeleteTitle(ctx context.Context, actor *models.User, id int64) error
	GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error)
	ListTitles(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	ratings    ReviewService
	titleCache *cache.TitleCache
	now        func() time.Time
}

// NewTitleService wires the catalog's central entity. now is injected so the
// year validation can be pinned in tests.
func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	ratings ReviewService,
	titleCache *cache.TitleCache,
	now func() time.Time,
) TitleService {
	if now == nil {
		now = time.Now
	}
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		ratings:    ratings,
		titleCache: titleCache,
		now:        now,
	}
}

func (s *titleService) CreateTitle(ctx context.Context, actor *models.User, req dto.TitleWriteRequest) (*dto.TitleResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindTitle}) {
		return nil, apperr.Permission("only administrators may manage titles")
	}
	if err := models.ValidateName(req.Name); err != nil {
		return nil, err
	}
	if err := models.ValidateYear(req.Year, s.now()); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
		return nil, fmt.Errorf("attach genres: %w", err)
	}

	return s.GetTitle(ctx, title.ID)
}

func (s *titleService) UpdateTitle(ctx context.Context, actor *models.User, id int64, req dto.TitleUpdateRequest) (*dto.TitleResponse, error) {
	if !access.Decide(actor, access.ActionUpdate, access.Resource{Kind: access.KindTitle}) {
		return nil, apperr.Permission("only administrators may manage titles")
	}

	title, err := s.titles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("title")
		}
		return nil, fmt.Errorf("look up title: %w", err)
	}

	if req.Name != nil {
		if err := models.ValidateName(*req.Name); err != nil {
			return nil, err
		}
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := models.ValidateYear(*req.Year, s.now()); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, *req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
	}

	s.titleCache.Invalidate(ctx, id)
	return s.GetTitle(ctx, id)
}

func (s *titleService) DeleteTitle(ctx context.Context, actor *models.User, id int64) error {
	if !access.Decide(actor, access.ActionDelete, access.Resource{Kind: access.KindTitle}) {
		return apperr.Permission("only administrators may manage titles")
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("title")
		}
		return fmt.Errorf("delete title: %w", err)
	}
	s.titleCache.Invalidate(ctx, id)
	return nil
}

// GetTitle returns the title with its derived rating. The cached payload, if
// any, never includes the rating; it is recomputed from the review rows on
// every read.
func (s *titleService) GetTitle(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	resp := s.titleCache.Get(ctx, id)
	if resp == nil {
		title, err := s.titles.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("title")
			}
			return nil, fmt.Errorf("look up title: %w", err)
		}
		resp = dto.FromModelToTitleResponse(title, nil)
		s.titleCache.Set(ctx, id, resp)
	}

	rating, err := s.ratings.TitleRating(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Rating = rating
	return resp, nil
}

func (s *titleService) ListTitles(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titles.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		rating, err := s.ratings.TitleRating(ctx, titles[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("category", fmt.Sprintf("unknown category slug %q", slug))
		}
		return nil, fmt.Errorf("look up category: %w", err)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("look up genres: %w", err)
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, apperr.Validation("genre", fmt.Sprintf("unknown genre slug %q", slug))
			}
		}
	}
	return genres, nil
}
