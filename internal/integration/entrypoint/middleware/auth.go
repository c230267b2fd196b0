// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/household-ledger/backend/internal/application/adapter"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
	"github.com/household-ledger/backend/internal/integration/entrypoint/dto"
)

type memberKey string

// memberIDKey holds the authenticated member both on the Gin context and on the
// request context handed to use cases.
const memberIDKey memberKey = "household-ledger/member_id"

// AuthMiddleware resolves the household member behind a bearer token.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate rejects requests without a valid access token. The bearer scheme is
// matched case-insensitively.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			reject(c, "Sign in to access household data", domainerror.ErrCodeMissingToken)
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			reject(c, "Authorization must use the Bearer scheme", domainerror.ErrCodeInvalidToken)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			reject(c, "Sign in to access household data", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainerror.ErrExpiredToken) {
				reject(c, "Session expired, sign in again", domainerror.ErrCodeExpiredToken)
				return
			}
			reject(c, "Access token is not valid", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(memberIDKey), claims.UserID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), memberIDKey, claims.UserID))
		c.Next()
	}
}

func reject(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext returns the authenticated member of the request.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(string(memberIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// MemberIDFromContext reads the member set by Authenticate from a request context.
func MemberIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(memberIDKey).(uuid.UUID)
	return id, ok
}
