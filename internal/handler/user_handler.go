package handler

import (
	"context"
	"errors"
	"net/http"

	"chatline/internal/domain/user"
	"chatline/internal/transport/httpdto"
	"chatline/internal/validation"
	chat_errors "chatline/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidUserBody = "Invalid user body"
	msgLoginFailed     = "Login failed"
)

type UserService interface {
	SaveUser(ctx context.Context, body user.Credentials) (user.SafeUser, error)
	LoginUser(ctx context.Context, creds user.Credentials) (user.SafeUser, error)
	GetUserByUsername(ctx context.Context, username string) (user.SafeUser, error)
	DeleteUserByUsername(ctx context.Context, username string) (user.SafeUser, error)
	UpdateUser(ctx context.Context, username string, patch user.Patch) (user.SafeUser, error)
}

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Signup(c *gin.Context) {
	body, ok := bindUserBody(c)
	if !ok {
		return
	}

	created, err := h.service.SaveUser(c.Request.Context(), body)
	if err != nil {
		serviceFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(created))
}

func (h *UserHandler) Login(c *gin.Context) {
	body, ok := bindUserBody(c)
	if !ok {
		return
	}

	loggedIn, err := h.service.LoginUser(c.Request.Context(), body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(msgLoginFailed, "LOGIN_FAILED"))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(loggedIn))
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	body, ok := bindUserBody(c)
	if !ok {
		return
	}

	password := body.Password
	updated, err := h.service.UpdateUser(c.Request.Context(), body.Username, user.Patch{Password: &password})
	if err != nil {
		serviceFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(updated))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	found, err := h.service.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(found))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	removed, err := h.service.DeleteUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(removed))
}

// bindUserBody decodes and validates a username/password body, writing the
// 400 response itself when either step fails.
func bindUserBody(c *gin.Context) (user.Credentials, bool) {
	var req httpdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msgInvalidUserBody, "INVALID_REQUEST"))
		return user.Credentials{}, false
	}

	body := req.Credentials()
	if !validation.IsUserBodyValid(body) {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msgInvalidUserBody, "INVALID_REQUEST"))
		return user.Credentials{}, false
	}
	return body, true
}

// serviceFailure answers every structured service failure with a 500; the
// code tells the kinds apart.
func serviceFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), errorCode(err)))
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, chat_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, chat_errors.ErrConflict):
		return "CONFLICT"
	case errors.Is(err, chat_errors.ErrInvalidInput):
		return "INVALID_REQUEST"
	case errors.Is(err, chat_errors.ErrInvalidCredentials):
		return "LOGIN_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
