package middleware

// HTTPObserver приёмник метрик HTTP запросов
type HTTPObserver interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// RateLimitRecorder счётчик отклонённых запросов
type RateLimitRecorder interface {
	RecordRateLimited(limiter string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
