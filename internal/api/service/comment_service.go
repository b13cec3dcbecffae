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

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, actor *models.User, titleID, reviewID int64, text string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
	GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) CommentService {
	return &commentService{
		comments: comments,
		reviews:  reviews,
	}
}

func (s *commentService) CreateComment(ctx context.Context, actor *models.User, titleID, reviewID int64, text string) (*dto.CommentResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindComment}) {
		return nil, apperr.Permission("authentication required to post a comment")
	}
	if text == "" {
		return nil, apperr.Validation("text", "must not be empty")
	}

	if _, err := s.loadReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	comment, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error) {
	comment, err := s.loadComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !access.Decide(actor, access.ActionUpdate, access.Resource{Kind: access.KindComment, OwnerID: comment.AuthorID}) {
		return nil, apperr.Permission("you may not edit this comment")
	}
	if text == "" {
		return nil, apperr.Validation("text", "must not be empty")
	}

	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.loadComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !access.Decide(actor, access.ActionDelete, access.Resource{Kind: access.KindComment, OwnerID: comment.AuthorID}) {
		return apperr.Permission("you may not delete this comment")
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.loadComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) ListComments(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.loadReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.comments.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *commentService) loadReview(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
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

func (s *commentService) loadComment(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if _, err := s.loadReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment")
		}
		return nil, fmt.Errorf("look up comment: %w", err)
	}
	if comment.ReviewID != reviewID {
		return nil, apperr.NotFound("comment")
	}
	return comment, nil
}
