package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, на которые реагирует сервис
const (
	UniqueViolation      = "23505"
	ExclusionViolation   = "23P01"
	ForeignKeyViolation  = "23503"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки PostgreSQL из цепочки err или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Is проверяет, что в цепочке err есть ошибка PostgreSQL с кодом code
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

// Constraint имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
