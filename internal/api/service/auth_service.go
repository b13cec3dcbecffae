package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

const confirmationMailSubject = "Your confirmation code"

// Mailer delivers a message to a single recipient. Delivery failure is fatal
// to the signup call, never swallowed.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthService interface {
	RequestConfirmationCode(ctx context.Context, username, email string) (*dto.SignUpResponse, error)
	ExchangeCodeForToken(ctx context.Context, username, code string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	mailer Mailer
	signer auth.TokenSigner
}

func NewAuthService(users repository.UserRepository, mailer Mailer, signer auth.TokenSigner) AuthService {
	return &authService{
		users:  users,
		mailer: mailer,
		signer: signer,
	}
}

// RequestConfirmationCode signs a (username, email) pair up, or re-issues a
// code for an existing pair. A username or email already bound to a different
// pair is a conflict. The fresh code unconditionally replaces the stored one,
// so only the latest issued code validates; when two requests race, the last
// commit wins.
func (s *authService) RequestConfirmationCode(ctx context.Context, username, email string) (*dto.SignUpResponse, error) {
	if err := models.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByPair(ctx, username, email)
	switch {
	case err == nil:
		// Exact pair exists, reuse the record.
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.signUp(ctx, username, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("look up user: %w", err)
	}

	code, err := auth.GenerateConfirmationCode()
	if err != nil {
		return nil, err
	}
	user.ConfirmationCode = &code
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is %s.\n", user.Username, code)
	if err := s.mailer.Send(ctx, user.Email, confirmationMailSubject, body); err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	return &dto.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

func (s *authService) signUp(ctx context.Context, username, email string) (*models.User, error) {
	// Friendlier pre-checks; the unique constraints below stay the arbiter.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperr.Conflict("a user with this username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up username: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("a user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race against a concurrent signup.
			return nil, apperr.Conflict("a user with this username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ExchangeCodeForToken trades a valid confirmation code for a signed access
// token bound to the user's identity and role. The stored code has no expiry
// and survives a successful exchange until the next signup request rotates
// it; a long-lived shared secret is a known weakness of this flow.
func (s *authService) ExchangeCodeForToken(ctx context.Context, username, code string) (string, error) {
	if err := models.ValidateUsername(username); err != nil {
		return "", err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("user")
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if user.ConfirmationCode == nil || !auth.CodesEqual(*user.ConfirmationCode, code) {
		return "", apperr.Unauthorized("confirmation code does not match")
	}

	token, err := s.signer.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
