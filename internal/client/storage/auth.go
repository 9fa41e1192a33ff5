package storage

import "context"

//go:generate moq -out authstorage_mock.go . AuthStorage

// AuthStorage defines interface for storing session data on client.
// Токены выдает внешний сервис аутентификации; клиент их только хранит.
type AuthStorage interface {
	// SaveAuth stores session data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored session data.
	// Returns ErrAuthNotFound if no auth data exists.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored session data (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData represents session information in storage
type AuthData struct {
	UserID      string `json:"user_id"`      // UserID идентификатор пользователя (claim sub)
	AccessToken string `json:"access_token"` // AccessToken bearer токен
	ExpiresAt   int64  `json:"expires_at"`   // ExpiresAt unix-время истечения токена, 0 = бессрочный
}
