package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/cancel_appointment"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgAlreadyCanceled      = "запись уже отменена"
	msgCannotCancel         = "запись не может быть отменена в текущем статусе"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/businesses/{businessId}/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		var windowErr *domain.CancellationWindowError

		switch {
		case errors.As(err, &windowErr):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Too late to cancel: appointment_id=%d, %v", appointmentID, err)
			handlers.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, windowErr.Message(), map[string]interface{}{
				"minHours": windowErr.MinHours,
			})

		case errors.Is(err, domain.ErrAlreadyCanceled):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already canceled: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCanceled)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%d, %v", appointmentID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment canceled: appointment_id=%d, business_id=%d",
		appointmentID, businessID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
