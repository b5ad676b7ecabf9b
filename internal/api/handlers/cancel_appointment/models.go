package cancel_appointment

import (
	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CanceledAt string `json:"canceledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:         resp.ID,
		Status:     resp.Status,
		Date:       resp.Start.Format(domain.DateFormat),
		StartTime:  resp.Start.Format(domain.TimeFormat),
		EndTime:    domain.FormatEnd(resp.Start, resp.End),
		CanceledAt: resp.CanceledAt.Format("2006-01-02T15:04:05"),
	}
}
