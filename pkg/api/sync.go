package api

import "github.com/taskwire/taskwire/internal/models"

// SyncPayload представляет полный снимок локальных данных для bulk sync.
// Собирается по требованию и отбрасывается после загрузки; единственный
// долговременный результат — серверный учет созданных/дублированных записей.
type SyncPayload struct {
	Boards         []models.Board         `json:"boards"`
	Columns        []models.Column        `json:"columns"`
	Cards          []models.Card          `json:"cards"`
	Transcriptions []models.Transcription `json:"transcriptions"`
	Settings       *models.Settings       `json:"settings,omitempty"`
}

// TotalItems возвращает суммарное количество записей во всех коллекциях
func (p *SyncPayload) TotalItems() int {
	return len(p.Boards) + len(p.Columns) + len(p.Cards) + len(p.Transcriptions)
}

// SyncUploadResponse ответ сервера на принятую загрузку
type SyncUploadResponse struct {
	Message string `json:"message,omitempty"`
}

// Sync status values reported by GET /sync/status.
const (
	SyncStatusCompleted = "completed"
	SyncStatusIdle      = "idle" // сервер завершил обработку и сбросил состояние
)

// SyncStatusResponse ответ сервера о ходе обработки загруженного снимка
type SyncStatusResponse struct {
	Status           string `json:"status"`
	FailedItems      int    `json:"failed_items"`
	DuplicateBoards  int    `json:"duplicate_boards"`
	DuplicateColumns int    `json:"duplicate_columns"`
	DuplicateCards   int    `json:"duplicate_cards"`
	Message          string `json:"message,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
