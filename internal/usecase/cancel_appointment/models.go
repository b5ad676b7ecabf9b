package cancel_appointment

import "time"

// Request модель запроса на отмену записи
type Request struct {
	BusinessID    int64
	AppointmentID int64
}

// Response отменённая запись
type Response struct {
	ID         int64
	Status     string
	Start      time.Time
	End        time.Time
	CanceledAt time.Time
}
