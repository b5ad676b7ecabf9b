package domain

// Service услуга бизнеса. Длительность определяет, насколько рано до конца смены может начаться слот.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	IsActive        bool
}
