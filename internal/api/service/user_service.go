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

type UserService interface {
	CreateUser(ctx context.Context, actor *models.User, req dto.AdminUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, actor *models.User, username string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor *models.User, username string, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor *models.User, username string) error
	ListUsers(ctx context.Context, actor *models.User, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)

	GetSelf(actor *models.User) *dto.UserResponse
	UpdateSelf(ctx context.Context, actor *models.User, req dto.UpdateSelfRequest) (*dto.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// CreateUser is the admin registration path; unlike signup it may set any
// role and sends no confirmation code.
func (s *userService) CreateUser(ctx context.Context, actor *models.User, req dto.AdminUserRequest) (*dto.UserResponse, error) {
	if !access.Decide(actor, access.ActionCreate, access.Resource{Kind: access.KindUser}) {
		return nil, apperr.Permission("only administrators may manage users")
	}
	if err := models.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := models.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperr.Validation("role", "must be one of user, moderator, admin")
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("a user with this username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, actor *models.User, username string) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !access.Decide(actor, access.ActionRead, access.Resource{Kind: access.KindUser, OwnerID: user.ID}) {
		return nil, apperr.Permission("only administrators may view other users")
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *models.User, username string, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	// Role changes are an admin capability, so this path requires more than
	// self-ownership.
	if actor == nil || !actor.IsAdmin() {
		return nil, apperr.Permission("only administrators may manage users")
	}

	if req.Email != nil {
		if err := models.ValidateEmail(*req.Email); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, apperr.Validation("role", "must be one of user, moderator, admin")
		}
		user.Role = *req.Role
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("a user with this email already exists")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *models.User, username string) error {
	if actor == nil || !actor.IsAdmin() {
		return apperr.Permission("only administrators may manage users")
	}
	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, actor *models.User, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, apperr.Permission("only administrators may list users")
	}

	users, total, err := s.users.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *userService) GetSelf(actor *models.User) *dto.UserResponse {
	return dto.FromModelToUserResponse(actor)
}

// UpdateSelf touches only the fields a user owns outright. Username, email
// and role stay read-only to self; the request shape cannot even carry them.
func (s *userService) UpdateSelf(ctx context.Context, actor *models.User, req dto.UpdateSelfRequest) (*dto.UserResponse, error) {
	if req.FirstName != nil {
		actor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		actor.LastName = *req.LastName
	}
	if req.Bio != nil {
		actor.Bio = *req.Bio
	}

	if err := s.users.Save(ctx, actor); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return dto.FromModelToUserResponse(actor), nil
}

func (s *userService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}
