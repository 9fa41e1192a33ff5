package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLen максимальная длина имени доски, колонки или карточки
	MaxNameLen = 120
)

// ValidateName проверяет имя доски, колонки или карточки.
// Имя не может быть пустым (после обрезки пробелов), длиннее MaxNameLen
// рун и не может содержать управляющие символы.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name cannot contain control characters")
		}
	}

	return nil
}
