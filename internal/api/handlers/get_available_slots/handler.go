package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidEmployeeID   = "некорректный ID сотрудника"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod       = "некорректный период, ожидается morning, afternoon или evening"
	msgInvalidInput        = "некорректные параметры запроса"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "сотрудник не оказывает эту услугу"
)

var (
	errInvalidServiceID = errors.New(msgInvalidServiceID)
	errInvalidDate      = errors.New(msgInvalidDate)
	errInvalidPeriod    = errors.New(msgInvalidPeriod)
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/employees/{employeeId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), period (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	query := r.URL.Query()
	if query.Get("serviceId") == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	if query.Get("date") == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, employeeID, query.Get("serviceId"), query.Get("date"), query.Get("period"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /available-slots - Employee not found: business_id=%d, employee_id=%d", businessID, employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: business_id=%d, service_id=%d",
				businessID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotAvailable):
			handlers.RespondUnprocessable(w, msgServiceNotAvailable)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: business_id=%d, employee_id=%d, error=%v",
				businessID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: business_id=%d, employee_id=%d, slots_count=%d",
		businessID, employeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
