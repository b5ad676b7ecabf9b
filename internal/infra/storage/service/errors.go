package service

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга бизнеса не найдена
	ErrServiceNotFound = errors.New("service.repository: service not found")

	ErrBuildQuery = errors.New("service.repository: failed to build query")
	ErrScanRow    = errors.New("service.repository: failed to scan row")
)
