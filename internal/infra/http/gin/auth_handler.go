package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	appauth "findmeroom/internal/app/auth"
	"findmeroom/internal/app/dto"
	domainuser "findmeroom/internal/domain/user"
)

// AuthHTTP exposes registration and login endpoints.
type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
}

// AuthHandler bridges HTTP with the auth service.
type AuthHandler struct {
	Auth   *appauth.Service
	Logger *slog.Logger
}

func (h AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	session, err := h.Auth.Register(c.Request.Context(), appauth.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTokenResponse(session))
}

func (h AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	session, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(session))
}

// Me returns the authenticated user's profile.
func (h AuthHandler) Me(c *gin.Context) {
	p, ok := requireAuth(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.UserProfile{ID: p.ID, Email: p.Email, Name: p.Name})
}

func (h AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appauth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, domainuser.ErrEmailAlreadyUsed),
		errors.Is(err, domainuser.ErrPhoneAlreadyUsed),
		errors.Is(err, domainuser.ErrInvalidPhone),
		errors.Is(err, domainuser.ErrEmailRequired),
		errors.Is(err, domainuser.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("auth call failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "auth unavailable"})
	}
}

func toTokenResponse(session *appauth.Session) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken: session.Token,
		TokenType:   "bearer",
		User: dto.UserProfile{
			ID:    session.User.ID,
			Email: session.User.Email,
			Name:  session.User.Name,
		},
	}
}

var _ AuthHTTP = (*AuthHandler)(nil)
