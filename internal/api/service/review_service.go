package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"reviewhub/internal/api/access"
	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, actor *models.User, titleID int64, text string, score int) (*dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor *models.User, titleID, reviewID int64) error
	GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	ListReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	TitleRating(ctx context.Context, titleID int64) (*int, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
}

func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository) ReviewService {
	return &reviewService{
		reviews: reviews,
		titles:  titles,
	}
}

// CreateReview posts the actor's single review for a title. The existence
// pre-check only buys a friendlier message; the (title, author) unique
// constraint is what actually rejects a concurrent duplicate, and both paths
// surface the same Conflict.
func (s *reviewService) CreateReview(ctx context.Context, actor *models.User, titleID int64, text string, score int) (*dto.ReviewResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindReview}) {
		return nil, apperr.Permission("authentication required to post a review")
	}
	if err := models.ValidateScore(score); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apperr.Validation("text", "must not be empty")
	}

	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("title")
		}
		return nil, fmt.Errorf("look up title: %w", err)
	}

	if _, err := s.reviews.GetByTitleAndAuthor(ctx, titleID, actor.ID); err == nil {
		return nil, apperr.Conflict("you have already reviewed this title")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up review: %w", err)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("you have already reviewed this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	review, err := s.reviews.GetByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// UpdateReview changes text and/or score. The author and target title never
// change across an update, whoever performs it.
func (s *reviewService) UpdateReview(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.loadReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.Decide(actor, access.ActionUpdate, access.Resource{Kind: access.KindReview, OwnerID: review.AuthorID}) {
		return nil, apperr.Permission("you may not edit this review")
	}

	if req.Score != nil {
		if err := models.ValidateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		if *req.Text == "" {
			return nil, apperr.Validation("text", "must not be empty")
		}
		review.Text = *req.Text
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// DeleteReview removes the review; its comments cascade away with it.
func (s *reviewService) DeleteReview(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.loadReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !access.Decide(actor, access.ActionDelete, access.Resource{Kind: access.KindReview, OwnerID: review.AuthorID}) {
		return apperr.Permission("you may not delete this review")
	}

	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.loadReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) ListReviews(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("title")
		}
		return nil, fmt.Errorf("look up title: %w", err)
	}

	reviews, total, err := s.reviews.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

// TitleRating is the mean of the title's current review scores, rounded
// half-up (an average of 7.5 yields 8). With no reviews the rating is nil,
// never zero. Always computed from the rows at read time.
func (s *reviewService) TitleRating(ctx context.Context, titleID int64) (*int, error) {
	avg, count, err := s.reviews.AverageScore(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	rating := int(math.Floor(avg + 0.5))
	return &rating, nil
}

// loadReview fetches a review and checks it belongs to the title from the
// route, so review ids cannot be addressed through the wrong title.
func (s *reviewService) loadReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review")
		}
		return nil, fmt.Errorf("look up review: %w", err)
	}
	if review.TitleID != titleID {
		return nil, apperr.NotFound("review")
	}
	return review, nil
}
