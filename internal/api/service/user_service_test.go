package service

import (
	"context"
	"errors"
	"testing"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateUser_AdminSetsRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "moder" && u.Role == models.RoleModerator
	})).Return(nil)

	resp, err := svc.CreateUser(context.Background(), testAdmin, dto.AdminUserRequest{
		Username: "moder",
		Email:    "moder@example.com",
		Role:     models.RoleModerator,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, resp.Role)
}

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleUser
	})).Return(nil)

	resp, err := svc.CreateUser(context.Background(), testAdmin, dto.AdminUserRequest{
		Username: "plain",
		Email:    "plain@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
}

func TestCreateUser_NonAdminDenied(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	for _, actor := range []*models.User{nil, testAuthor, testModerator} {
		_, err := svc.CreateUser(context.Background(), actor, dto.AdminUserRequest{
			Username: "x", Email: "x@example.com",
		})
		assert.True(t, errors.Is(err, apperr.ErrPermission))
	}
}

func TestCreateUser_BadRole(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	_, err := svc.CreateUser(context.Background(), testAdmin, dto.AdminUserRequest{
		Username: "x", Email: "x@example.com", Role: "superuser",
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestCreateUser_DuplicateIdentity(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.CreateUser(context.Background(), testAdmin, dto.AdminUserRequest{
		Username: "alice", Email: "alice@example.com",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestGetUser_SelfOrAdmin(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	stored := &models.User{ID: "author-1", Username: "alice", Email: "alice@example.com"}
	users.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	// Self read is allowed.
	resp, err := svc.GetUser(context.Background(), testAuthor, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	// Admin reads anyone.
	_, err = svc.GetUser(context.Background(), testAdmin, "alice")
	assert.NoError(t, err)

	// Another plain user, and even a moderator, are denied.
	_, err = svc.GetUser(context.Background(), testStranger, "alice")
	assert.True(t, errors.Is(err, apperr.ErrPermission))
	_, err = svc.GetUser(context.Background(), testModerator, "alice")
	assert.True(t, errors.Is(err, apperr.ErrPermission))
}

func TestGetUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetUser(context.Background(), testAdmin, "ghost")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateUser_AdminPromotesRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	stored := &models.User{ID: "author-1", Username: "alice", Role: models.RoleUser}
	users.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
	users.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleModerator
	})).Return(nil)

	role := models.RoleModerator
	resp, err := svc.UpdateUser(context.Background(), testAdmin, "alice", dto.AdminUpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, resp.Role)
}

func TestUpdateUser_SelfCannotUseAdminPath(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	stored := &models.User{ID: "author-1", Username: "alice", Role: models.RoleUser}
	users.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	bio := "hello"
	_, err := svc.UpdateUser(context.Background(), testAuthor, "alice", dto.AdminUpdateUserRequest{Bio: &bio})
	assert.True(t, errors.Is(err, apperr.ErrPermission))
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("Delete", mock.Anything, "alice").Return(nil)

	assert.NoError(t, svc.DeleteUser(context.Background(), testAdmin, "alice"))
	assert.True(t, errors.Is(svc.DeleteUser(context.Background(), testModerator, "alice"), apperr.ErrPermission))
}

func TestListUsers_AdminOnly(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("List", mock.Anything, "", 1, 10).Return([]models.User{
		{Username: "alice"}, {Username: "bob"},
	}, int64(2), nil)

	page, err := svc.ListUsers(context.Background(), testAdmin, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	_, err = svc.ListUsers(context.Background(), testAuthor, "", 1, 10)
	assert.True(t, errors.Is(err, apperr.ErrPermission))
}

func TestUpdateSelf_OnlyProfileFields(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	actor := &models.User{ID: "author-1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	users.On("Save", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		// Identity and role survive a self update untouched.
		return u.Bio == "reader of long novels" &&
			u.Username == "alice" && u.Email == "alice@example.com" && u.Role == models.RoleUser
	})).Return(nil)

	bio := "reader of long novels"
	resp, err := svc.UpdateSelf(context.Background(), actor, dto.UpdateSelfRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "reader of long novels", resp.Bio)
	assert.Equal(t, models.RoleUser, resp.Role)
}
