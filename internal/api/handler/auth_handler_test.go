package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestConfirmationCode(ctx context.Context, username, email string) (*dto.SignUpResponse, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SignUpResponse), args.Error(1)
}

func (m *MockAuthService) ExchangeCodeForToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUp_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("RequestConfirmationCode", mock.Anything, "alice", "alice@example.com").
		Return(&dto.SignUpResponse{Username: "alice", Email: "alice@example.com"}, nil)

	w := postJSON(router, "/api/v1/auth/signup", dto.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.SignUpResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response.Username)
	assert.Equal(t, "alice@example.com", response.Email)

	mockAuth.AssertExpectations(t)
}

func TestSignUp_IdentityConflict(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("RequestConfirmationCode", mock.Anything, "alice", "new@example.com").
		Return(nil, apperr.Conflict("a user with this username already exists"))

	w := postJSON(router, "/api/v1/auth/signup", dto.SignUpRequest{
		Username: "alice",
		Email:    "new@example.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("RequestConfirmationCode", mock.Anything, "me", "me@example.com").
		Return(nil, apperr.Validation("username", `"me" is not allowed as a username`))

	w := postJSON(router, "/api/v1/auth/signup", dto.SignUpRequest{
		Username: "me",
		Email:    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "username", response["field"])
}

func TestSignUp_MissingFields(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	w := postJSON(router, "/api/v1/auth/signup", map[string]string{"username": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "RequestConfirmationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestToken_Success(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("ExchangeCodeForToken", mock.Anything, "alice", "04217").
		Return("signed.jwt.token", nil)

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "04217",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "signed.jwt.token", response.Token)
}

func TestToken_WrongCode(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("ExchangeCodeForToken", mock.Anything, "alice", "99999").
		Return("", apperr.Unauthorized("confirmation code does not match"))

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "99999",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToken_UnknownUser(t *testing.T) {
	mockAuth := new(MockAuthService)
	router := setupRouter()
	NewAuthHandler(mockAuth).RegisterRoutes(router.Group("/api/v1"))

	mockAuth.On("ExchangeCodeForToken", mock.Anything, "ghost", "04217").
		Return("", apperr.NotFound("user"))

	w := postJSON(router, "/api/v1/auth/token", dto.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "04217",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
