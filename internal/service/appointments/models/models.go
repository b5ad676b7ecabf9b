package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
)

// AppointmentResponse ответ с данными записи.
// Дата и время отдаются в локальном времени бизнеса.
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	ClientID   *int64 `json:"clientId,omitempty"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "11:00"
	Status     string `json:"status"`

	CanceledAt *string `json:"canceledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		EmployeeID: a.EmployeeID,
		ServiceID:  a.ServiceID,
		ClientID:   a.ClientID,
		Date:       a.Start.Format(domain.DateFormat),
		StartTime:  a.Start.Format(domain.TimeFormat),
		EndTime:    domain.FormatEnd(a.Start, a.End),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}

	if a.CanceledAt != nil {
		canceled := a.CanceledAt.Format("2006-01-02T15:04:05")
		resp.CanceledAt = &canceled
	}

	return resp
}
