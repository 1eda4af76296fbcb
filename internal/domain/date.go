package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidEventDate возвращается, когда дату события нельзя привести к YYYY-MM-DD
var ErrInvalidEventDate = errors.New("domain: invalid event date")

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeEventDate приводит дату к YYYY-MM-DD
// Принимает DD/MM/YYYY, DD-MM-YYYY и YYYY-MM-DD
func NormalizeEventDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)

	switch {
	case strings.Contains(value, "/"):
		parts := strings.Split(value, "/")
		if len(parts) == 3 {
			value = parts[2] + "-" + parts[1] + "-" + parts[0]
		}
	case strings.Contains(value, "-"):
		parts := strings.Split(value, "-")
		if len(parts) == 3 && len(parts[0]) == 2 && len(parts[2]) == 4 {
			value = parts[2] + "-" + parts[1] + "-" + parts[0]
		}
	}

	if !isoDatePattern.MatchString(value) {
		return "", ErrInvalidEventDate
	}

	// 2025-02-30 проходит по шаблону, но такой даты нет
	parsed, err := time.Parse(DateFormat, value)
	if err != nil {
		return "", ErrInvalidEventDate
	}

	// В PostgreSQL DATE нет нулевого года
	if parsed.Year() < 1 {
		return "", ErrInvalidEventDate
	}

	return value, nil
}
