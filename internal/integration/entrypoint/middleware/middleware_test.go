package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/household-ledger/backend/internal/application/adapter"
	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

type stubTokenService struct {
	claims *adapter.TokenClaims
	err    error
}

func (s *stubTokenService) IssueAccessToken(context.Context, uuid.UUID, string) (string, error) {
	return "token", nil
}

func (s *stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		svc    *stubTokenService
		status int
		code   string
	}{
		{name: "missing header", header: "", svc: &stubTokenService{}, status: http.StatusUnauthorized, code: string(domainerror.ErrCodeMissingToken)},
		{name: "not bearer", header: "Basic abc", svc: &stubTokenService{}, status: http.StatusUnauthorized, code: string(domainerror.ErrCodeInvalidToken)},
		{name: "expired", header: "Bearer abc", svc: &stubTokenService{err: domainerror.ErrExpiredToken}, status: http.StatusUnauthorized, code: string(domainerror.ErrCodeExpiredToken)},
		{name: "invalid", header: "Bearer abc", svc: &stubTokenService{err: domainerror.ErrInvalidToken}, status: http.StatusUnauthorized, code: string(domainerror.ErrCodeInvalidToken)},
		{name: "blank token", header: "Bearer   ", svc: &stubTokenService{}, status: http.StatusUnauthorized, code: string(domainerror.ErrCodeMissingToken)},
		{name: "valid", header: "Bearer abc", svc: &stubTokenService{claims: &adapter.TokenClaims{UserID: userID}}, status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer abc", svc: &stubTokenService{claims: &adapter.TokenClaims{UserID: userID}}, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/", NewAuthMiddleware(tt.svc).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				require.True(t, ok)
				c.String(http.StatusOK, id.String())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Contains(t, rec.Body.String(), tt.code)
			} else {
				assert.Equal(t, userID.String(), rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_MemberOnRequestContext(t *testing.T) {
	userID := uuid.New()
	svc := &stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "sam@example.com"}}

	engine := gin.New()
	engine.GET("/", NewAuthMiddleware(svc).Authenticate(), func(c *gin.Context) {
		id, ok := MemberIDFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())

	_, ok := MemberIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	current := time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	engine := gin.New()
	engine.POST("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2"), "other callers are unaffected")

	current = current.Add(61 * time.Second)
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"), "window resets")

	current = current.Add(2 * time.Minute)
	rl.Cleanup()
	assert.Empty(t, rl.entries)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:5173"}))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	t.Run("preflight is answered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.NotContains(t, rec.Body.String(), "pong")
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
