package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

func TestLoginStoresPublicAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.newSession()

	admin, err := f.auth.Login(ctx, sess, "wasac@example.com", "password123")
	require.NoError(t, err)

	want := domain.AdminPublic{ID: "3", Name: "Alice Uwase", Email: "wasac@example.com", Agency: domain.AgencyWASAC}
	assert.Equal(t, want, *admin)

	current, err := f.auth.CurrentSession(ctx, sess)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, want, *current)
	assert.True(t, f.auth.IsAuthenticated(ctx, sess))
}

func TestFailedLoginKeepsPriorSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.login(t, "reg@example.com")

	_, err := f.auth.Login(ctx, sess, "rtda@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	current, err := f.auth.CurrentSession(ctx, sess)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, domain.AgencyREG, current.Agency)
}

func TestAuthenticateIsGeneric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.auth.Authenticate(ctx, "rtda@example.com", "nope")
	_, unknownEmail := f.auth.Authenticate(ctx, "nobody@example.com", "password123")
	_, paddedEmail := f.auth.Authenticate(ctx, " rtda@example.com", "password123")
	_, otherCase := f.auth.Authenticate(ctx, "RTDA@example.com", "password123")

	for _, err := range []error{wrongPassword, unknownEmail, paddedEmail, otherCase} {
		require.Error(t, err)
		assert.Equal(t, wrongPassword.Error(), err.Error())
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	}
}

func TestLogoutAlwaysClears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := f.newSession()
	require.NoError(t, f.auth.Logout(ctx, empty))
	assert.False(t, f.auth.IsAuthenticated(ctx, empty))

	sess := f.login(t, "dgie@example.com")
	require.NoError(t, f.auth.Logout(ctx, sess))
	assert.False(t, f.auth.IsAuthenticated(ctx, sess))

	current, err := f.auth.CurrentSession(ctx, sess)
	require.NoError(t, err)
	assert.Nil(t, current)
}
