package domain

import (
	"strings"
	"unicode"
)

// Client клиент бизнеса, уникален по (BusinessID, Phone)
type Client struct {
	ID         int64
	BusinessID int64
	Name       string
	Phone      string // нормализованный, только цифры
}

// NormalizePhone leaves digits only: "+7 (900) 123-45-67" -> "79001234567"
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone checks the digit count of a normalized phone
func IsValidPhone(normalized string) bool {
	return len(normalized) >= MinPhoneDigits && len(normalized) <= MaxPhoneDigits
}
