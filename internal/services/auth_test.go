package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persx/persx-sub000/internal/data/repos"
	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

func newAuth(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	return NewAuthService(logger.Nop(), repos.NewAdminUserRepo(db, logger.Nop()), "test-secret", time.Hour)
}

func TestLoginIssuesTokenThatRoundTrips(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()
	user, err := svc.CreateUser(ctx, "Editor@PersX.ai", "Editor", "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.Password)

	res, err := svc.Login(ctx, "editor@persx.ai", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	authed, err := svc.SetContextFromToken(ctx, res.Token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(authed)
	require.NotNil(t, rd)
	assert.Equal(t, user.ID, rd.UserID)
	assert.Equal(t, "editor@persx.ai", rd.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, "editor@persx.ai", "Editor", "correct horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "editor@persx.ai", "wrong password")
	assert.ErrorIs(t, err, perrors.ErrUnauthorized)
	_, err = svc.Login(ctx, "nobody@persx.ai", "correct horse")
	assert.ErrorIs(t, err, perrors.ErrUnauthorized)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, "not-an-email", "", "correct horse")
	assert.ErrorIs(t, err, perrors.ErrInvalidArgument)
	_, err = svc.CreateUser(ctx, "editor@persx.ai", "", "short")
	assert.ErrorIs(t, err, perrors.ErrInvalidArgument)

	_, err = svc.CreateUser(ctx, "editor@persx.ai", "", "correct horse")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "EDITOR@persx.ai", "", "correct horse")
	assert.ErrorIs(t, err, perrors.ErrConflict)
}

func TestSetContextFromTokenRejectsForeignTokens(t *testing.T) {
	svc := newAuth(t)
	ctx := context.Background()
	_, err := svc.SetContextFromToken(ctx, "")
	assert.ErrorIs(t, err, perrors.ErrUnauthorized)
	_, err = svc.SetContextFromToken(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, perrors.ErrUnauthorized)

	_, err = svc.CreateUser(ctx, "editor@persx.ai", "", "correct horse")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "editor@persx.ai", "correct horse")
	require.NoError(t, err)

	other := NewAuthService(logger.Nop(), nil, "another-secret", time.Hour)
	_, err = other.SetContextFromToken(ctx, res.Token)
	assert.ErrorIs(t, err, perrors.ErrUnauthorized)
}
