package middleware

import (
	domainerrors "minibank/internal/domain/errors"
	"minibank/internal/domain/service"
	"minibank/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys for values set by Authenticate.
const (
	contextKeyUserID  = "userID"
	contextKeySubject = "tokenSubject"
	contextKeyEmail   = "tokenEmail"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stashes its claims on
// the context. A missing token and an invalid token answer with distinct
// messages, both 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := auth.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrTokenRequired
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrTokenInvalid
		}

		// Set user info on the context for handlers to use
		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeySubject, claims.Subject)
		c.Set(contextKeyEmail, claims.Email)

		return next(c)
	}
}

// RequireSelf is a middleware factory restricting a route to the user the
// token was issued for. The named path parameter is compared to the token
// subject as a raw string; no storage lookup happens here, so a well-formed
// target that belongs to the caller still reaches the handler (which may
// answer 404). It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, ok := GetSubject(c)
			if !ok {
				return domainerrors.ErrTokenInvalid
			}

			if c.Param(param) != subject {
				return domainerrors.ErrOwnershipViolation
			}

			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user's ID set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetSubject extracts the raw token subject set by Authenticate.
func GetSubject(c echo.Context) (string, bool) {
	subject, ok := c.Get(contextKeySubject).(string)

	return subject, ok
}

// GetEmail extracts the authenticated user's email set by Authenticate.
func GetEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(contextKeyEmail).(string)

	return email, ok
}
