package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	"github.com/Moussassoss/citizens-complaints/internal/session"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

func TestVerifiers(t *testing.T) {
	plain, err := NewVerifier("")
	require.NoError(t, err)
	assert.True(t, plain.Verify("password123", "password123"))
	assert.False(t, plain.Verify("password123", "Password123"))
	assert.False(t, plain.Verify("password123", ""))

	hashed, err := HashPassword("password123", 4)
	require.NoError(t, err)
	bcryptVerifier, err := NewVerifier(ModeBcrypt)
	require.NoError(t, err)
	assert.True(t, bcryptVerifier.Verify(hashed, "password123"))
	assert.False(t, bcryptVerifier.Verify(hashed, "wrong"))
	assert.False(t, bcryptVerifier.Verify("password123", "password123"))

	_, err = NewVerifier("md5")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	token, expiresAt, err := tokens.GenerateToken("sess-1", "3")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "3", claims.Subject)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	assert.Error(t, err)
}

func newTestApp(t *testing.T, store session.Store) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	mw := NewAuthMiddleware(NewTokenManager("secret", 5), store)
	app.Get("/me", mw.Handle, RequireSignedIn(), func(c *fiber.Ctx) error {
		admin, ok := AdminFromContext(c)
		require.True(t, ok)
		return c.SendString(string(admin.Agency))
	})
	app.Get("/optional", mw.Attach, func(c *fiber.Ctx) error {
		if SessionFromContext(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("bound")
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMiddlewareResolvesSession(t *testing.T) {
	store := session.NewMemoryStore()
	app := newTestApp(t, store)

	token, _, err := NewTokenManager("secret", 5).GenerateToken("sess-1", "3")
	require.NoError(t, err)

	status, body := doRequest(t, app, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apperrors.CodeUnauthorized, body)

	status, _ = doRequest(t, app, "/me", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Valid token but empty slot.
	status, _ = doRequest(t, app, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, status)

	require.NoError(t, session.New(store, "sess-1").Save(context.Background(), domain.AdminPublic{ID: "3", Agency: domain.AgencyWASAC}))
	status, body = doRequest(t, app, "/me", token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.AgencyWASAC), body)
}

func TestAttachIsOptional(t *testing.T) {
	app := newTestApp(t, session.NewMemoryStore())
	token, _, err := NewTokenManager("secret", 5).GenerateToken("sess-1", "3")
	require.NoError(t, err)

	_, body := doRequest(t, app, "/optional", "")
	assert.Equal(t, "anonymous", body)

	_, body = doRequest(t, app, "/optional", "garbage")
	assert.Equal(t, "anonymous", body)

	_, body = doRequest(t, app, "/optional", token)
	assert.Equal(t, "bound", body)
}
