package auth

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwire/taskwire/internal/client/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// memoryAuthStore возвращает мок, который хранит auth данные в памяти
func memoryAuthStore() *storage.AuthStorageMock {
	var saved *storage.AuthData
	mock := &storage.AuthStorageMock{}
	mock.SaveAuthFunc = func(ctx context.Context, auth *storage.AuthData) error {
		saved = auth
		return nil
	}
	mock.GetAuthFunc = func(ctx context.Context) (*storage.AuthData, error) {
		if saved == nil {
			return nil, storage.ErrAuthNotFound
		}
		return saved, nil
	}
	mock.DeleteAuthFunc = func(ctx context.Context) error {
		if saved == nil {
			return storage.ErrAuthNotFound
		}
		saved = nil
		return nil
	}
	return mock
}

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return signed
}

func TestLogin_ParsesClaims(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())

	exp := time.Now().Add(time.Hour)
	token := signedToken(t, "user-42", exp)

	auth, err := service.Login(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", auth.UserID)
	assert.Equal(t, exp.Unix(), auth.ExpiresAt)
	assert.Equal(t, token, auth.AccessToken)
	assert.Len(t, store.SaveAuthCalls(), 1)
}

func TestLogin_OpaqueTokenAccepted(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())

	auth, err := service.Login(context.Background(), "opaque-api-key")
	require.NoError(t, err)

	assert.Equal(t, "opaque-api-key", auth.AccessToken)
	assert.Empty(t, auth.UserID)
	assert.Zero(t, auth.ExpiresAt)
}

func TestLogin_RejectsExpiredToken(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())

	token := signedToken(t, "user-42", time.Now().Add(-time.Hour))

	_, err := service.Login(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Empty(t, store.SaveAuthCalls())
}

func TestLogin_RejectsEmptyToken(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())

	_, err := service.Login(context.Background(), "")
	assert.Error(t, err)
}

func TestIsAuthenticated(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())
	ctx := context.Background()

	ok, err := service.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.Login(ctx, signedToken(t, "user-42", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	ok, err = service.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAuthenticated_ExpiredToken(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())
	ctx := context.Background()

	_, err := service.Login(ctx, signedToken(t, "user-42", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	// токен истекает между Login и проверкой
	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	ok, err := service.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.AccessToken(ctx)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())
	ctx := context.Background()

	token := signedToken(t, "user-42", time.Now().Add(time.Hour))
	_, err := service.Login(ctx, token)
	require.NoError(t, err)

	got, err := service.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestLogout(t *testing.T) {
	store := memoryAuthStore()
	service := NewService(store, testLogger())
	ctx := context.Background()

	_, err := service.Login(ctx, signedToken(t, "user-42", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx))

	ok, err := service.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// повторный logout без сессии не ошибка
	require.NoError(t, service.Logout(ctx))
}
