package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxEmailLength       = 254
	MinNameLength        = 1
	MaxNameLength        = 200
	MaxCountryLength     = 100
	MaxDescriptionLength = 2000
	MaxAddressLength     = 500
	MinPrice             = 0.0
	MaxPrice             = 1000000.0
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fmt.Errorf("email слишком длинный")
	}
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("некорректный формат email")
	}
	return nil
}

// ValidateName проверяет непустое название разумной длины.
func ValidateName(fieldName, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s обязательно", fieldName)
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return fmt.Errorf("%s не должно превышать %d символов", fieldName, MaxNameLength)
	}
	return nil
}

// ValidatePrice проверяет цену блюда.
func ValidatePrice(price float64) error {
	if price < MinPrice {
		return fmt.Errorf("цена не может быть отрицательной")
	}
	if price > MaxPrice {
		return fmt.Errorf("цена слишком велика")
	}
	return nil
}

// ValidateCode проверяет, что код состоит ровно из шести цифр.
func ValidateCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("код должен состоять из 6 цифр")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("код должен состоять из 6 цифр")
		}
	}
	return nil
}
