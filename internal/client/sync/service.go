package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpapi "github.com/taskwire/taskwire/internal/client/api"
	"github.com/taskwire/taskwire/internal/client/storage"
	"github.com/taskwire/taskwire/internal/models"
	"github.com/taskwire/taskwire/pkg/api"
)

// Status описывает фазу bulk sync
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPreparing Status = "preparing"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

const (
	defaultPollInterval = time.Second
	defaultMaxPolls     = 30
)

// Progress представляет ход одного bulk sync прогона.
// Сбрасывается в idle перед запуском, терминальные значения —
// completed и error.
type Progress struct {
	Status           Status
	TotalItems       int
	ProcessedItems   int
	FailedItems      int
	DuplicateBoards  int
	DuplicateColumns int
	DuplicateCards   int
	Message          string
}

// Percent возвращает процент обработанных записей.
// Пустой снимок (TotalItems == 0) не делит на ноль: терминальный
// completed считается 100%, все остальное 0%.
func (p Progress) Percent() int {
	if p.TotalItems <= 0 {
		if p.Status == StatusCompleted {
			return 100
		}
		return 0
	}
	return p.ProcessedItems * 100 / p.TotalItems
}

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс bulk sync оркестратора
type Service interface {
	// Run выполняет один полный прогон: сборка снимка, загрузка,
	// ожидание серверной обработки. Возвращает терминальный Progress.
	Run(ctx context.Context, accessToken string) (*Progress, error)

	// OnProgress подписывает наблюдателя на обновления прогресса.
	// Возвращает функцию отписки; наблюдателей может быть сколько угодно.
	OnProgress(fn func(p Progress)) func()
}

// Option настраивает service при создании
type Option func(*service)

// WithPollInterval задает период опроса статуса обработки
func WithPollInterval(d time.Duration) Option {
	return func(s *service) { s.pollInterval = d }
}

// WithMaxPolls задает предел попыток опроса статуса
func WithMaxPolls(n int) Option {
	return func(s *service) { s.maxPolls = n }
}

// service handles one-shot upload of the full local snapshot
type service struct {
	apiClient    httpapi.ClientAPI
	store        storage.SnapshotStorage
	logger       *slog.Logger
	pollInterval time.Duration
	maxPolls     int

	mu        sync.Mutex
	nextSubID int
	subs      map[int]func(Progress)
}

// NewService creates a new bulk sync service
func NewService(apiClient httpapi.ClientAPI, store storage.SnapshotStorage, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		apiClient:    apiClient,
		store:        store,
		logger:       logger,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
		subs:         make(map[int]func(Progress)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnProgress регистрирует наблюдателя прогресса
func (s *service) OnProgress(fn func(p Progress)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Run performs one full bulk sync pass:
// 1. preparing: собрать снимок и посчитать записи
// 2. uploading: отправить снимок одним запросом с bearer токеном
// 3. опрашивать /sync/status до completed/idle или исчерпания бюджета
func (s *service) Run(ctx context.Context, accessToken string) (*Progress, error) {
	s.publish(Progress{Status: StatusIdle})

	// 1. Сборка снимка
	s.publish(Progress{Status: StatusPreparing})
	payload, err := s.assemblePayload(ctx)
	if err != nil {
		return s.fail(0, fmt.Errorf("failed to prepare sync payload: %w", err))
	}

	total := payload.TotalItems()
	s.logger.Info("sync payload assembled",
		"boards", len(payload.Boards),
		"columns", len(payload.Columns),
		"cards", len(payload.Cards),
		"transcriptions", len(payload.Transcriptions))
	s.publish(Progress{Status: StatusPreparing, TotalItems: total})

	// 2. Загрузка одним запросом
	s.publish(Progress{Status: StatusUploading, TotalItems: total})
	if _, err := s.apiClient.UploadSync(ctx, accessToken, *payload); err != nil {
		return s.fail(total, err)
	}

	// Снимок принят; дальше сервер обрабатывает его сам
	s.publish(Progress{Status: StatusUploading, TotalItems: total, ProcessedItems: total})

	// 3. Ожидание серверной обработки. Ошибки отдельных опросов
	// глотаются: временный сбой опроса не отменяет sync.
	for attempt := 0; attempt < s.maxPolls; attempt++ {
		timer := time.NewTimer(s.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return s.fail(total, fmt.Errorf("sync cancelled: %w", ctx.Err()))
		case <-timer.C:
		}

		status, err := s.apiClient.GetSyncStatus(ctx, accessToken)
		if err != nil {
			s.logger.Debug("sync status poll failed", "attempt", attempt+1, "error", err)
			continue
		}

		// idle означает что сервер уже обработал снимок и сбросил состояние
		if status.Status == api.SyncStatusCompleted || status.Status == api.SyncStatusIdle {
			final := Progress{
				Status:           StatusCompleted,
				TotalItems:       total,
				ProcessedItems:   total,
				FailedItems:      status.FailedItems,
				DuplicateBoards:  status.DuplicateBoards,
				DuplicateColumns: status.DuplicateColumns,
				DuplicateCards:   status.DuplicateCards,
				Message:          status.Message,
			}
			s.publish(final)
			s.logger.Info("sync completed",
				"failed_items", final.FailedItems,
				"duplicate_boards", final.DuplicateBoards,
				"duplicate_columns", final.DuplicateColumns,
				"duplicate_cards", final.DuplicateCards)
			return &final, nil
		}
	}

	// Бюджет опросов исчерпан: загрузка принята, обработка дойдет
	// и без нашего наблюдения — завершаемся оптимистично
	final := Progress{
		Status:         StatusCompleted,
		TotalItems:     total,
		ProcessedItems: total,
		Message:        "uploaded, processing continues on server",
	}
	s.publish(final)
	s.logger.Info("sync status poll attempts exhausted, assuming server will finish")
	return &final, nil
}

// assemblePayload собирает полный снимок локальных данных
func (s *service) assemblePayload(ctx context.Context) (*api.SyncPayload, error) {
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	columns, err := s.store.ListAllColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	cards, err := s.store.ListAllCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	transcriptions, err := s.store.ListTranscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcriptions: %w", err)
	}

	payload := &api.SyncPayload{
		Boards:         make([]models.Board, 0, len(boards)),
		Columns:        make([]models.Column, 0, len(columns)),
		Cards:          make([]models.Card, 0, len(cards)),
		Transcriptions: make([]models.Transcription, 0, len(transcriptions)),
	}
	for _, b := range boards {
		payload.Boards = append(payload.Boards, *b)
	}
	for _, c := range columns {
		payload.Columns = append(payload.Columns, *c)
	}
	for _, c := range cards {
		payload.Cards = append(payload.Cards, *c)
	}
	for _, t := range transcriptions {
		payload.Transcriptions = append(payload.Transcriptions, *t)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
	} else {
		payload.Settings = settings
	}

	return payload, nil
}

// fail публикует терминальную ошибку прогона
func (s *service) fail(total int, err error) (*Progress, error) {
	final := Progress{
		Status:     StatusError,
		TotalItems: total,
		Message:    err.Error(),
	}
	s.publish(final)
	s.logger.Error("sync failed", "error", err)
	return &final, err
}

// publish доставляет прогресс всем подписчикам
func (s *service) publish(p Progress) {
	s.mu.Lock()
	subs := make([]func(Progress), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}
