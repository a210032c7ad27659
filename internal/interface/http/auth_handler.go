package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/application"
	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	"github.com/oksasatya/go-link-saver/internal/interface/middleware"
	"github.com/oksasatya/go-link-saver/pkg/response"
	"github.com/oksasatya/go-link-saver/pkg/validation"
)

// AuthService is the account side of the application layer.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*application.Session, error)
	Login(ctx context.Context, email, password string) (*application.Session, error)
	CurrentUser(ctx context.Context, id int64) (*entity.User, error)
}

type AuthHandler struct {
	Svc    AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type sessionView struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func toUserView(u *entity.User) userView { return userView{ID: u.ID, Email: u.Email} }

func toSessionView(s *application.Session) sessionView {
	return sessionView{User: toUserView(s.User), Token: s.Token}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailInUse) {
			response.Error[any](c, http.StatusConflict, "email already in use", nil)
			return
		}
		internalError(c, h.Logger, "register failed", err)
		return
	}
	response.Success(c, http.StatusCreated, toSessionView(sess), "registered", map[string]any{"expires_at": sess.ExpiresAt})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		internalError(c, h.Logger, "login failed", err)
		return
	}
	response.Success(c, http.StatusOK, toSessionView(sess), "login successful", map[string]any{"expires_at": sess.ExpiresAt})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	u, err := h.Svc.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		internalError(c, h.Logger, "load current user failed", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toUserView(u)}, "ok", nil)
}
