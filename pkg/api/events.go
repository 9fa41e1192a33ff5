package api

// Имена доменных событий, передаваемых в поле data широковещательного
// сообщения. Одно имя — одна форма payload.
const (
	EventBoardData    = "board:data"    // доска переименована
	EventColumnCreate = "column:create" // колонка создана
	EventColumnData   = "column:data"   // колонка переименована или перемещена
	EventColumnDelete = "column:delete" // колонка удалена (вместе с карточками)
	EventCardCreate   = "card:create"   // карточка создана
	EventCardData     = "card:data"     // карточка обновлена
	EventCardDelete   = "card:delete"   // карточка удалена
	EventCardColumn   = "card:column"   // карточка перенесена между колонками
)

// BoardPayload payload события board:data
type BoardPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt int64  `json:"updated_at"`
}

// ColumnPayload payload событий column:create и column:data
type ColumnPayload struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ColumnDeletePayload payload события column:delete.
// CardIDs опционален: relay старых версий его не шлет, каскадное удаление
// карточек выполняется по column_id и не зависит от этого поля.
type ColumnDeletePayload struct {
	ID       string   `json:"id"`
	BoardID  string   `json:"board_id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	CardIDs  []string `json:"card_ids,omitempty"`
}

// CardPayload описание карточки внутри card:* событий
type CardPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColumnID    string `json:"column_id"`
	Index       int    `json:"index"`
}

// CardEventPayload payload событий card:create, card:data и card:delete
type CardEventPayload struct {
	Column ColumnPayload `json:"column"`
	Card   CardPayload   `json:"card"`
}

// CardMovePayload payload события card:column.
// OldColumn может быть nil — получателю он нужен только для анимации
// перехода, обязательный эффект это смена column_id на NewColumn.ID.
type CardMovePayload struct {
	CardID    string         `json:"card_id"`
	OldColumn *ColumnPayload `json:"old_column"`
	NewColumn ColumnPayload  `json:"new_column"`
	Index     int            `json:"index"`
}
