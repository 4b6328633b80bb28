package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
	"github.com/arkan-dev/custodia-api/internal/session"
)

func newAuthFixture(t *testing.T) (AuthService, session.Store, *recorderStub) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	sessions := session.NewRedisStore(redisClient, time.Hour)

	db := setupTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: "jdoe", PasswordHash: string(hash)}
	require.NoError(t, db.Create(&user).Error)

	recorder := &recorderStub{}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(repository.NewUserRepository(db), sessions, recorder, validate, "test-secret", time.Hour, testLogger())
	return svc, sessions, recorder
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, sessions, recorder := newAuthFixture(t)
	ctx := context.Background()
	meta := RequestMeta{IP: "10.0.0.1", UserAgent: "test-agent"}

	response, err := svc.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "s3cret"}, meta)
	require.NoError(t, err)
	require.Equal(t, "jdoe", response.Username)
	require.NotEmpty(t, response.SessionToken)
	require.NotEmpty(t, response.BearerToken)

	sess, err := sessions.Get(ctx, response.SessionToken)
	require.NoError(t, err)
	require.Equal(t, response.UserID, sess.UserID)

	logins := recorder.byType(models.ActivityLogin)
	require.Len(t, logins, 1)
	require.Equal(t, response.UserID, *logins[0].UserID)
	require.Equal(t, "10.0.0.1", logins[0].Meta.IP)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, _, recorder := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "wrong"}, RequestMeta{})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "s3cret"}, RequestMeta{})
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	require.Empty(t, recorder.entries, "failed logins are not audited")
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jdoe"}, RequestMeta{})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
}

func TestAuthServiceLogoutDestroysSession(t *testing.T) {
	svc, sessions, recorder := newAuthFixture(t)
	ctx := context.Background()

	response, err := svc.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "s3cret"}, RequestMeta{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, response.SessionToken, RequestMeta{IP: "10.0.0.1"}))

	_, err = sessions.Get(ctx, response.SessionToken)
	require.True(t, errors.Is(err, session.ErrSessionNotFound))

	logouts := recorder.byType(models.ActivityLogout)
	require.Len(t, logouts, 1)
	require.Equal(t, response.UserID, *logouts[0].UserID)
}

func TestAuthServiceLogoutUnknownTokenIsBenign(t *testing.T) {
	svc, _, recorder := newAuthFixture(t)

	require.NoError(t, svc.Logout(context.Background(), "no-such-token", RequestMeta{}))
	require.Empty(t, recorder.byType(models.ActivityLogout))
}
