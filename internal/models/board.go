package models

// Board представляет kanban-доску.
// Доска одновременно является комнатой для live-коллаборации:
// id доски используется как room id на relay.
type Board struct {
	ID        string `json:"id"`         // ID уникальный идентификатор доски (UUID)
	Name      string `json:"name"`       // Name отображаемое имя доски
	CreatedAt int64  `json:"created_at"` // CreatedAt unix-время создания
	UpdatedAt int64  `json:"updated_at"` // UpdatedAt unix-время последнего изменения
}

// Column представляет колонку на доске
type Column struct {
	ID        string `json:"id"`         // ID уникальный идентификатор колонки (UUID)
	BoardID   string `json:"board_id"`   // BoardID доска, которой принадлежит колонка
	Name      string `json:"name"`       // Name заголовок колонки
	Position  int    `json:"position"`   // Position порядковая позиция на доске
	CreatedAt int64  `json:"created_at"` // CreatedAt unix-время создания
	UpdatedAt int64  `json:"updated_at"` // UpdatedAt unix-время последнего изменения
}

// Card представляет карточку задачи внутри колонки
type Card struct {
	ID          string `json:"id"`          // ID уникальный идентификатор карточки (UUID)
	ColumnID    string `json:"column_id"`   // ColumnID колонка, в которой находится карточка
	Name        string `json:"name"`        // Name заголовок карточки
	Description string `json:"description"` // Description описание задачи
	Index       int    `json:"index"`       // Index позиция внутри колонки
	CreatedAt   int64  `json:"created_at"`  // CreatedAt unix-время создания
	UpdatedAt   int64  `json:"updated_at"`  // UpdatedAt unix-время последнего изменения
}

// Transcription представляет расшифровку голосовой заметки.
// Создается внешним сервисом транскрипции; клиент только хранит
// и включает ее в bulk sync снимок.
type Transcription struct {
	ID        string `json:"id"`         // ID уникальный идентификатор записи (UUID)
	BoardID   string `json:"board_id"`   // BoardID доска, к которой относится заметка
	Text      string `json:"text"`       // Text текст расшифровки
	CreatedAt int64  `json:"created_at"` // CreatedAt unix-время создания
}

// Settings представляет пользовательские настройки приложения
type Settings struct {
	Theme    string `json:"theme"`    // Theme тема оформления ("light", "dark")
	Language string `json:"language"` // Language язык интерфейса (BCP 47)
}
