// Package middleware provides the session, logging, rate limiting, and
// tracing middleware for the application.
package middleware

import (
	"strconv"
	"time"

	"blogicum/internal/cache"
	"blogicum/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "blogicum_session"
	// SessionTTL bounds how long a login lasts.
	SessionTTL = 14 * 24 * time.Hour

	tokenIssuer   = "blogicum"
	tokenAudience = "blogicum-web"
)

var cfg *config.Config

// InitMiddleware initializes the middleware package with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// IssueSession mints a signed session token for the user. Each token
// carries a unique JTI so logout can revoke it individually.
func IssueSession(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// ParseSession validates a session token and returns the user ID, the
// token's JTI, and its expiry.
func ParseSession(tokenString string) (uint, string, time.Time, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
		}
		return []byte(cfg.SessionSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil || !token.Valid {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "invalid or expired session")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "invalid session claims")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "invalid session subject")
	}
	return uint(userID), claims.ID, claims.ExpiresAt.Time, nil
}

// SessionAuth resolves the session cookie into c.Locals("userID"). The
// middleware never blocks: anonymous visitors proceed with no user set,
// and revoked or malformed tokens are treated as anonymous.
func SessionAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookieName)
		if tokenString == "" {
			return c.Next()
		}
		userID, jti, _, err := ParseSession(tokenString)
		if err != nil {
			return c.Next()
		}
		if cache.IsTokenRevoked(c.UserContext(), jti) {
			return c.Next()
		}
		c.Locals("userID", userID)
		c.Locals("sessionJTI", jti)
		return c.Next()
	}
}

// RequireLogin gates mutating routes. Anonymous visitors are redirected
// to the login page, matching the behavior of every authenticated form.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := c.Locals("userID").(uint); !ok || uid == 0 {
			return c.Redirect("/auth/login/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RevokeCurrentSession denylists the request's session token until its
// natural expiry. Used by logout.
func RevokeCurrentSession(c *fiber.Ctx) {
	tokenString := c.Cookies(SessionCookieName)
	if tokenString == "" {
		return
	}
	_, jti, expires, err := ParseSession(tokenString)
	if err != nil {
		return
	}
	if err := cache.RevokeToken(c.UserContext(), jti, time.Until(expires)); err != nil {
		// The token stays live until its natural expiry; make that visible.
		Logger.ErrorContext(c.UserContext(), "session revocation failed",
			"jti", jti, "error", err.Error())
	}
}
