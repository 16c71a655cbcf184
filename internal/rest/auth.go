package rest

import (
	"context"
	"net/http"
	"time"

	"krishiCMS/business/auth"
	"krishiCMS/domain"
	"krishiCMS/internal/middleware"
	"krishiCMS/pkg/logger"
	jsonres "krishiCMS/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	TTL() time.Duration
	Login(ctx context.Context, email, password string, client auth.Client) (string, domain.AdminUser, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uint64) (domain.AdminUser, error)
}

// CookieOptions controls the session cookie written at login.
type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	cookie      CookieOptions
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService, v *validator.Validate, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   v,
		cookie:      cookie,
		timeout:     10 * time.Second,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, jsonres.Fail("Invalid request body"))
	}

	if err := h.validator.Struct(&req); err != nil {
		return respondError(c, "user", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.authService.Login(ctx, req.Email, req.Password, auth.Client{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return respondError(c, "user", err)
	}

	c.SetCookie(h.sessionCookie(token, h.authService.TTL()))

	return c.JSON(http.StatusOK, jsonres.Success("Login successful", user))
}

// Logout always clears the cookie, even when the token was already revoked.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.TokenFromRequest(c, h.cookie.Name)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	c.SetCookie(h.sessionCookie("", -time.Second))

	if err := h.authService.Logout(ctx, token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jsonres.Success("Logout successful", nil))
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.authService.Me(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, "user", err)
	}

	return c.JSON(http.StatusOK, jsonres.Success("successfully get profile", user))
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	} else {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
