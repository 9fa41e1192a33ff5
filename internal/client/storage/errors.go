package storage

import "errors"

var (
	// ErrAuthNotFound сохраненных данных сессии нет (пользователь не логинился)
	ErrAuthNotFound = errors.New("auth data not found")

	// ErrBoardNotFound доска с таким id не найдена
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound колонка с таким id не найдена
	ErrColumnNotFound = errors.New("column not found")

	// ErrCardNotFound карточка с таким id не найдена
	ErrCardNotFound = errors.New("card not found")

	// ErrSettingsNotFound настройки еще не сохранялись
	ErrSettingsNotFound = errors.New("settings not found")
)
