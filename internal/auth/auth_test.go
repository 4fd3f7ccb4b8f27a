package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"majlis-rsvp/internal/auth"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, expiresAt, err := auth.IssueToken(testSecret, 7, "siti", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	adminID, claims, err := auth.ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), adminID)
	assert.Equal(t, "siti", claims.Username)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := auth.IssueToken(testSecret, 7, "siti", time.Hour)
	assert.NoError(t, err)

	_, _, err = auth.ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, _, err := auth.IssueToken(testSecret, 7, "siti", -time.Minute)
	assert.NoError(t, err)

	_, _, err = auth.ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Basic abc")
	_, err = auth.ExtractTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Bearer sometoken")
	token, err := auth.ExtractTokenFromRequest(req)
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)
}

func TestMemorySessionCache(t *testing.T) {
	cache := auth.NewMemorySessionCache()
	ctx := context.Background()

	active, err := cache.Active(ctx, "unknown")
	assert.NoError(t, err)
	assert.False(t, active)

	assert.NoError(t, cache.Register(ctx, "token1", time.Now().Add(time.Hour)))
	active, err = cache.Active(ctx, "token1")
	assert.NoError(t, err)
	assert.True(t, active)

	assert.NoError(t, cache.Revoke(ctx, "token1"))
	active, err = cache.Active(ctx, "token1")
	assert.NoError(t, err)
	assert.False(t, active)

	// Expired registrations count as inactive.
	assert.NoError(t, cache.Register(ctx, "token2", time.Now().Add(-time.Minute)))
	active, err = cache.Active(ctx, "token2")
	assert.NoError(t, err)
	assert.False(t, active)
}

func TestMiddleware(t *testing.T) {
	sessions := auth.NewMemorySessionCache()
	protected := auth.Middleware(testSecret, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, int64(7), auth.AdminID(r.Context()))
		assert.Equal(t, "siti", auth.Username(r.Context()))
		assert.NotEmpty(t, auth.SessionToken(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	// No credentials.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, expiresAt, err := auth.IssueToken(testSecret, 7, "siti", time.Hour)
	assert.NoError(t, err)

	// Valid signature but no registered session.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Registered session passes.
	assert.NoError(t, sessions.Register(context.Background(), token, expiresAt))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Revocation locks the token out again.
	assert.NoError(t, sessions.Revoke(context.Background(), token))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
