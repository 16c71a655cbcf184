package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"
	jsonres "krishiCMS/pkg/response"
	"krishiCMS/pkg/utils"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// TokenValidator checks a session token and returns its claims.
type TokenValidator interface {
	Authenticate(ctx context.Context, token string) (*utils.Claims, error)
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func TokenFromRequest(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) == 2 && strings.EqualFold(tokenParts[0], "Bearer") {
		return strings.TrimSpace(tokenParts[1])
	}

	return ""
}

// AuthMiddleware admits requests carrying a valid admin session.
func AuthMiddleware(validator TokenValidator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := TokenFromRequest(c, cookieName)
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Fail("Missing session token"))
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			claims, err := validator.Authenticate(ctx, tokenString)
			if err != nil {
				logger.Warn("Rejected session token", "path", c.Path(), err)
				return c.JSON(http.StatusUnauthorized, jsonres.Fail("Session expired or invalid"))
			}

			if claims.Role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, jsonres.Fail("Admin access required"))
			}

			userID, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Fail("Invalid user ID in token"))
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextToken, tokenString)

			return next(c)
		}
	}
}

// UserID returns the authenticated admin id, or 0 for public requests.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get(ContextUserID).(uint64)
	return id
}
