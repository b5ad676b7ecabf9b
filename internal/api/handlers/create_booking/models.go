package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID  int64  `json:"employeeId"`
	ServiceID   int64  `json:"serviceId"`
	ClientPhone string `json:"clientPhone"`
	ClientName  string `json:"clientName"`
	Date        string `json:"date"`      // "2025-10-15"
	StartTime   string `json:"startTime"` // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	ClientID   int64  `json:"clientId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		BusinessID:  businessID,
		EmployeeID:  r.EmployeeID,
		ServiceID:   r.ServiceID,
		ClientPhone: r.ClientPhone,
		ClientName:  r.ClientName,
		Date:        date,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		ClientID:   resp.ClientID,
		Date:       resp.Start.Format(domain.DateFormat),
		StartTime:  resp.Start.Format(domain.TimeFormat),
		EndTime:    domain.FormatEnd(resp.Start, resp.End),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
