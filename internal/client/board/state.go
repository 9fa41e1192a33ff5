package board

import (
	"sort"
	"sync"

	"github.com/taskwire/taskwire/internal/models"
)

// State представляет in-memory проекцию открытой доски: колонки, карточки
// и опционально карточка, открытая в detail view.
//
// Состояние мутируют двое: локальный пользователь (optimistic update до
// broadcast) и Reconciler (входящие события других участников). В хосте
// с GUI-циклом и сетевой горутиной это разные потоки, поэтому доступ
// сериализован мьютексом.
type State struct {
	mu       sync.Mutex
	board    *models.Board
	columns  []models.Column
	cards    []models.Card
	openCard *models.Card
}

// NewState создает пустое состояние без открытой доски
func NewState() *State {
	return &State{}
}

// SetBoard делает доску текущей и сбрасывает проекцию
func (s *State) SetBoard(board models.Board, columns []models.Column, cards []models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := board
	s.board = &b
	s.columns = append([]models.Column(nil), columns...)
	s.cards = append([]models.Card(nil), cards...)
	s.openCard = nil
	s.sortColumnsLocked()
}

// Board возвращает копию текущей доски или nil
func (s *State) Board() *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil {
		return nil
	}
	b := *s.board
	return &b
}

// Columns возвращает копию списка колонок в порядке позиций
func (s *State) Columns() []models.Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Column(nil), s.columns...)
}

// Cards возвращает копию списка карточек
func (s *State) Cards() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Card(nil), s.cards...)
}

// OpenCard возвращает копию карточки, открытой в detail view, или nil
func (s *State) OpenCard() *models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openCard == nil {
		return nil
	}
	c := *s.openCard
	return &c
}

// SetOpenCard открывает карточку в detail view (nil закрывает его)
func (s *State) SetOpenCard(card *models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card == nil {
		s.openCard = nil
		return
	}
	c := *card
	s.openCard = &c
}

// RenameBoard обновляет имя и updated_at текущей доски.
// Событие для чужой доски игнорируется: переключать открытую доску нельзя.
func (s *State) RenameBoard(boardID, name string, updatedAt int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.board == nil || s.board.ID != boardID {
		return
	}
	s.board.Name = name
	s.board.UpdatedAt = updatedAt
}

// AddColumn вставляет колонку, если колонки с таким id еще нет
// (идемпотентность против повторной доставки), и пересортировывает
// список по позициям.
func (s *State) AddColumn(column models.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.columns {
		if s.columns[i].ID == column.ID {
			return
		}
	}
	s.columns = append(s.columns, column)
	s.sortColumnsLocked()
}

// UpdateColumn перезаписывает имя и позицию колонки; no-op если колонки нет
func (s *State) UpdateColumn(columnID, name string, position int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.columns {
		if s.columns[i].ID == columnID {
			s.columns[i].Name = name
			s.columns[i].Position = position
			s.sortColumnsLocked()
			return
		}
	}
}

// RemoveColumn удаляет колонку и каскадно все ее карточки
func (s *State) RemoveColumn(columnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	columns := s.columns[:0]
	for _, col := range s.columns {
		if col.ID != columnID {
			columns = append(columns, col)
		}
	}
	s.columns = columns

	cards := s.cards[:0]
	for _, card := range s.cards {
		if card.ColumnID != columnID {
			cards = append(cards, card)
		}
	}
	s.cards = cards

	if s.openCard != nil && s.openCard.ColumnID == columnID {
		s.openCard = nil
	}
}

// AddCard вставляет карточку, если карточки с таким id еще нет
func (s *State) AddCard(card models.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			return
		}
	}
	s.cards = append(s.cards, card)
}

// UpdateCard перезаписывает изменяемые поля карточки; no-op если карточки
// нет (событие card:data могло обогнать card:create другого клиента).
// Копия в detail view обновляется вместе с основной.
func (s *State) UpdateCard(cardID, name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == cardID {
			s.cards[i].Name = name
			s.cards[i].Description = description
			if s.openCard != nil && s.openCard.ID == cardID {
				s.openCard.Name = name
				s.openCard.Description = description
			}
			return
		}
	}
}

// RemoveCard удаляет карточку; если она открыта в detail view, view
// закрывается. Удаление отсутствующего id — no-op.
func (s *State) RemoveCard(cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.cards[:0]
	for _, card := range s.cards {
		if card.ID != cardID {
			cards = append(cards, card)
		}
	}
	s.cards = cards
	if s.openCard != nil && s.openCard.ID == cardID {
		s.openCard = nil
	}
}

// MoveCard переносит карточку в другую колонку; no-op если карточки нет
func (s *State) MoveCard(cardID, newColumnID string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == cardID {
			s.cards[i].ColumnID = newColumnID
			s.cards[i].Index = index
			if s.openCard != nil && s.openCard.ID == cardID {
				s.openCard.ColumnID = newColumnID
				s.openCard.Index = index
			}
			return
		}
	}
}

// sortColumnsLocked держит колонки упорядоченными по позиции.
// Вызывается с удерживаемым s.mu.
func (s *State) sortColumnsLocked() {
	sort.SliceStable(s.columns, func(i, j int) bool {
		return s.columns[i].Position < s.columns[j].Position
	})
}
