package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotbook/backend/internal/service/auth"
)

type authService interface {
	authenticator
	Login(ctx context.Context, email, password string) (auth.Token, error)
	Refresh(ctx context.Context, tokenString string) (auth.Token, error)
	Logout(ctx context.Context, tokenString string) error
}

type AuthHandler struct {
	svc authService
	log *slog.Logger
}

func NewAuthHandler(svc authService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.auth")),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation failed", map[string]string{"body": err.Error()})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		h.log.Error("login failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token":      token.Value,
		"expires_at": token.ExpiresAt,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString, ok := currentToken(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	token, err := h.svc.Refresh(c.Request.Context(), tokenString)
	if errors.Is(err, auth.ErrInvalidToken) {
		respondError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
		return
	}
	if err != nil {
		h.log.Error("token refresh failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Token refreshed successfully", gin.H{
		"token":      token.Value,
		"expires_at": token.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString, ok := currentToken(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), tokenString); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		h.log.Error("logout failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}
