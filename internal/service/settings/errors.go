package settings

import "errors"

var (
	// ErrInvalidSettings возвращается, когда сохранённая политика нарушает допустимые границы
	ErrInvalidSettings = errors.New("settings: invalid business settings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
