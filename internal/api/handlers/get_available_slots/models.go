package get_available_slots

import (
	"strconv"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string   `json:"date"`
	EmployeeID int64    `json:"employeeId"`
	ServiceID  int64    `json:"serviceId"`
	Slots      []string `json:"slots"` // "HH:MM" по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(businessID, employeeID int64, serviceIDStr, dateStr, periodStr string) (*getAvailableSlots.Request, error) {
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, errInvalidServiceID
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	period, err := domain.ParsePeriod(periodStr)
	if err != nil {
		return nil, errInvalidPeriod
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
		Period:     period,
	}, nil
}
