// Package auth implements cookie-session authentication: register,
// login, logout and the middleware that resolves the session cookie to
// a user for the protected routes.
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/onzevirtual/fm-analytics/internal/config"
	"github.com/onzevirtual/fm-analytics/internal/constants"
	"github.com/onzevirtual/fm-analytics/internal/domain"
	"github.com/onzevirtual/fm-analytics/internal/repository"
)

const (
	CookieName = "session_token"

	// userContextKey is where AuthRequired stores the resolved user.
	userContextKey = "auth_user"

	minPasswordLength = 8
)

type Handler struct {
	users  *repository.UserRepository
	cfg    *config.Config
	logger zerolog.Logger
}

func NewHandler(users *repository.UserRepository, cfg *config.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		users:  users,
		cfg:    cfg,
		logger: logger.With().Str("handler", "auth").Logger(),
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentials
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	if len(req.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.Email, string(hash), strings.TrimSpace(req.Name))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		h.logger.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "plan": u.Plan})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentials
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing email or password"})
		return
	}

	u, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(constants.SessionTTL)
	if err := h.users.CreateSession(c.Request.Context(), token, u.ID, expiresAt); err != nil {
		h.logger.Error().Err(err).Int64("user_id", u.ID).Msg("session creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(constants.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)

	h.logger.Info().Int64("user_id", u.ID).Msg("user logged in")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		_ = h.users.DeleteSession(c.Request.Context(), token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) Me(c *gin.Context) {
	u := CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "plan": u.Plan})
}

// AuthRequired resolves the session cookie and stores the user on the
// context; requests without a live session are rejected.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := h.users.GetSessionUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth failed"})
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userContextKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, nil outside a
// protected route.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
