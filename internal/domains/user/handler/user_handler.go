package handler

import (
	"errors"
	"net/http"

	"certificates-backend/internal/domains/user"
	"certificates-backend/internal/domains/user/service"
	"certificates-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register - POST /auth/register (admin only)
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to create account")
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, user.ErrInactiveAccount):
			response.Forbidden(c, err.Error())
		default:
			response.InternalServerError(c, "login failed")
		}
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Refresh - POST /auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInactiveAccount) {
			response.Forbidden(c, err.Error())
			return
		}
		response.Unauthorized(c, "invalid refresh token")
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Me - GET /auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	u, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, u)
}

// ChangePassword - PUT /auth/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, user.ErrSamePassword):
			response.BadRequest(c, err.Error())
		default:
			response.InternalServerError(c, "failed to change password")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}
