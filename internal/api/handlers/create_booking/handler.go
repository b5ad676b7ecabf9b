package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/create_booking"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput        = "некорректные данные записи"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgDateInPast          = "нельзя записаться на прошедшую дату"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
	msgTooManyAppointments = "превышено количество активных записей клиента"
	msgEmployeeNotFound    = "сотрудник не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "сотрудник не оказывает эту услугу"

	limiterName = "booking_attempts"
)

type Handler struct {
	useCase CreateBookingUseCase
	limiter AttemptLimiter
	metrics RateLimitRecorder
	logger  Logger
}

// NewHandler limiter может быть nil, тогда попытки не ограничиваются
func NewHandler(useCase CreateBookingUseCase, limiter AttemptLimiter, metrics RateLimitRecorder, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		limiter: limiter,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Ограничение попыток по телефону. Недоступность redis не блокирует запись.
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(r.Context(), businessID, domain.NormalizePhone(req.ClientPhone))
		if err != nil {
			h.logger.Warn("POST /appointments - Attempt limiter unavailable: %v", err)
		} else if !allowed {
			h.logger.Warn("POST /appointments - Too many attempts: business_id=%d", businessID)
			if h.metrics != nil {
				h.metrics.RecordRateLimited(limiterName)
			}
			handlers.RespondTooManyRequests(w)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, businessID, &req, err)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, business_id=%d, employee_id=%d",
		result.ID, businessID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, businessID int64, req *CreateAppointmentRequest, err error) {
	var (
		slotErr    *domain.SlotUnavailableError
		horizonErr *domain.FutureLimitExceededError
		activeErr  *domain.SimultaneousLimitExceededError
	)

	switch {
	case errors.As(err, &slotErr):
		h.logger.Warn("POST /appointments - Slot not available: business_id=%d, employee_id=%d, %v",
			businessID, req.EmployeeID, err)
		details := map[string]interface{}{
			"date": slotErr.Date.Format(domain.DateFormat),
			"slot": slotErr.Slot.String(),
		}
		if slotErr.Conflict != nil {
			details["conflictStart"] = slotErr.Conflict.Start.Format(domain.TimeFormat)
			details["conflictEnd"] = domain.FormatEnd(slotErr.Conflict.Start, slotErr.Conflict.End)
		}
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotNotAvailable, details)

	case errors.As(err, &horizonErr):
		h.logger.Warn("POST /appointments - Date outside horizon: business_id=%d, %v", businessID, err)
		msg := msgDateTooFar
		details := map[string]interface{}{"limitDays": horizonErr.LimitDays}
		if horizonErr.Date.Before(horizonErr.Today) {
			msg = msgDateInPast
		}
		if maxDate := horizonErr.MaxDate(); !maxDate.IsZero() {
			details["maxDate"] = maxDate.Format(domain.DateFormat)
		}
		handlers.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msg, details)

	case errors.As(err, &activeErr):
		h.logger.Warn("POST /appointments - Simultaneous limit: business_id=%d, %v", businessID, err)
		handlers.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msgTooManyAppointments, map[string]interface{}{
			"limit":  activeErr.Limit,
			"active": activeErr.Active,
		})

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /appointments - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrEmployeeNotFound):
		h.logger.Warn("POST /appointments - Employee not found: business_id=%d, employee_id=%d", businessID, req.EmployeeID)
		handlers.RespondNotFound(w, msgEmployeeNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /appointments - Service not found: business_id=%d, service_id=%d", businessID, req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrServiceNotAvailable):
		handlers.RespondUnprocessable(w, msgServiceNotAvailable)

	default:
		h.logger.Error("POST /appointments - Failed to create appointment: business_id=%d, employee_id=%d, error=%v",
			businessID, req.EmployeeID, err)
		handlers.RespondInternalError(w)
	}
}
