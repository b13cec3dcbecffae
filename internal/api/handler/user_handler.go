package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user management surface. Everything here
// requires authentication; the admin-only rules live in the service.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	users := router.Group("/users", requireAuth)
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/me", h.GetSelf)
		users.PATCH("/me", h.UpdateSelf)
		users.GET("/:username", h.Get)
		users.PATCH("/:username", h.Update)
		users.DELETE("/:username", h.Delete)
	}
}

// List returns users, optionally filtered by username substring (admin only).
// GET /api/v1/users?search=
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.userService.ListUsers(c.Request.Context(), middleware.CurrentUser(c), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create registers a user record directly (admin only).
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.userService.CreateUser(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSelf returns the caller's own record.
// GET /api/v1/users/me
func (h *UserHandler) GetSelf(c *gin.Context) {
	c.JSON(http.StatusOK, h.userService.GetSelf(middleware.CurrentUser(c)))
}

// UpdateSelf patches the caller's own profile fields. Username, email and
// role are not accepted here.
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateSelf(c *gin.Context) {
	var req dto.UpdateSelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.userService.UpdateSelf(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a user by username (admin, or the user themselves).
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.userService.GetUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update patches a user record, including role (admin only).
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.userService.UpdateUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a user record (admin only).
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
