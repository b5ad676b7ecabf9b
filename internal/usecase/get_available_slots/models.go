package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	Date       time.Time     // Дата для получения слотов (без времени)
	Period     domain.Period // пусто = весь день
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time
	EmployeeID int64
	ServiceID  int64
	Slots      []types.TimeString // по возрастанию
}
