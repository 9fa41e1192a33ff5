package api

import (
	"context"

	"github.com/taskwire/taskwire/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI defines interface for the cloud sync HTTP client
type ClientAPI interface {
	// UploadSync загружает полный снимок локальных данных
	UploadSync(ctx context.Context, accessToken string, payload api.SyncPayload) (*api.SyncUploadResponse, error)

	// GetSyncStatus возвращает состояние серверной обработки снимка
	GetSyncStatus(ctx context.Context, accessToken string) (*api.SyncStatusResponse, error)
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)
