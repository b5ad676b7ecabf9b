package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID  int64
	EmployeeID  int64
	ServiceID   int64
	ClientPhone string // в любом формате, нормализуется до цифр
	ClientName  string
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	ClientID   int64
	Start      time.Time // локальное время бизнеса
	End        time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
