package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskwire/taskwire/internal/client/storage"
)

// ErrTokenExpired возвращается когда сохраненный токен уже истек
var ErrTokenExpired = errors.New("access token expired")

// Service предоставляет функции авторизации клиента.
// Токен выдается облачным сервисом и вводится пользователем;
// сервис хранит его локально и отвечает на вопрос "кто мы сейчас".
type Service struct {
	authStore storage.AuthStorage
	logger    *slog.Logger
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(authStore storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		authStore: authStore,
		logger:    logger,
		now:       time.Now,
	}
}

// Login сохраняет access token пользователя.
// Токен не верифицируется локально (ключ подписи знает только сервер),
// но claims разбираются чтобы запомнить user id и срок действия.
func (s *Service) Login(ctx context.Context, accessToken string) (*storage.AuthData, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is empty")
	}

	auth := &storage.AuthData{
		AccessToken: accessToken,
	}

	// 1. Разбираем claims без проверки подписи
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		// Непрозрачный токен тоже принимается, просто без exp/sub
		s.logger.Debug("token is not a parseable JWT, storing as opaque", "error", err)
	} else {
		if sub, err := claims.GetSubject(); err == nil {
			auth.UserID = sub
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			auth.ExpiresAt = exp.Unix()
		}
	}

	// 2. Отклоняем уже истекший токен сразу
	if auth.ExpiresAt != 0 && auth.ExpiresAt <= s.now().Unix() {
		return nil, ErrTokenExpired
	}

	// 3. Сохраняем
	if err := s.authStore.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("logged in", "user_id", auth.UserID)
	return auth, nil
}

// Logout удаляет сохраненные данные авторизации
func (s *Service) Logout(ctx context.Context) error {
	if err := s.authStore.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// IsAuthenticated проверяет наличие валидной авторизации
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get auth data: %w", err)
	}

	// ExpiresAt == 0 означает токен без срока действия
	if auth.ExpiresAt != 0 && auth.ExpiresAt <= s.now().Unix() {
		return false, nil
	}

	return true, nil
}

// AccessToken возвращает сохраненный access token
func (s *Service) AccessToken(ctx context.Context) (string, error) {
	auth, err := s.authStore.GetAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	if auth.ExpiresAt != 0 && auth.ExpiresAt <= s.now().Unix() {
		return "", ErrTokenExpired
	}
	return auth.AccessToken, nil
}

// UserID возвращает идентификатор текущего пользователя
func (s *Service) UserID(ctx context.Context) (string, error) {
	auth, err := s.authStore.GetAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	return auth.UserID, nil
}
