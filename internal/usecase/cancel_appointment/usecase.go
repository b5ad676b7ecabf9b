package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/appointment"
)

// UseCase отмена записи с учётом минимального окна уведомления
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute отменяет запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.BusinessID <= 0 || req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: businessID and appointmentID must be positive", ErrInvalidInput)
	}

	// 2. Свежие запись и политика бизнеса
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.BusinessID, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		uc.record(outcomeError)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	settings, err := uc.settings.GetSettings(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		uc.record(outcomeError)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.record(outcomeError)
		return nil, fmt.Errorf("%w: failed to resolve timezone: %v", ErrInternal, err)
	}
	now := domain.WallClock(uc.timeProvider.Now(), loc)

	// 3. Окно уведомления
	if settings.BookingCancelMinHours > 0 {
		hoursUntilStart := appointment.Start.Sub(now).Hours()
		if hoursUntilStart < float64(settings.BookingCancelMinHours) {
			uc.logger.Info("CancelAppointment: appointment id=%d starts in %.2fh, min notice %dh",
				appointment.ID, hoursUntilStart, settings.BookingCancelMinHours)
			uc.record(outcomeWindow)
			return nil, &domain.CancellationWindowError{
				MinHours:        settings.BookingCancelMinHours,
				HoursUntilStart: hoursUntilStart,
			}
		}
	}

	// 4. Статус
	if appointment.IsCanceled() {
		uc.record(outcomeAlreadyCanceled)
		return nil, &domain.AlreadyCanceledError{AppointmentID: appointment.ID}
	}
	if !domain.CanTransition(appointment.Status, domain.StatusCanceled) {
		uc.record(outcomeInvalidTransition)
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appointment.Status, domain.StatusCanceled)
	}

	// 5. Условное обновление. 0 строк - статус успели изменить, перечитываем.
	if err := uc.appointmentRepo.Cancel(ctx, req.BusinessID, appointment.ID, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			return nil, uc.resolveConflict(ctx, req)
		}
		uc.logger.Error("CancelAppointment: failed to cancel appointment id=%d: %v", appointment.ID, err)
		uc.record(outcomeError)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	uc.record(outcomeCanceled)
	uc.logger.Info("CancelAppointment: appointment id=%d canceled", appointment.ID)

	return &Response{
		ID:         appointment.ID,
		Status:     string(domain.StatusCanceled),
		Start:      appointment.Start,
		End:        appointment.End,
		CanceledAt: now,
	}, nil
}

func (uc *UseCase) resolveConflict(ctx context.Context, req *Request) error {
	current, err := uc.appointmentRepo.GetByID(ctx, req.BusinessID, req.AppointmentID)
	if err != nil {
		uc.record(outcomeError)
		return fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
	}

	uc.logger.Warn("CancelAppointment: appointment id=%d changed concurrently, status=%s", current.ID, current.Status)
	if current.IsCanceled() {
		uc.record(outcomeAlreadyCanceled)
		return &domain.AlreadyCanceledError{AppointmentID: current.ID}
	}
	uc.record(outcomeInvalidTransition)
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, domain.StatusCanceled)
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordCancellation(outcome)
	}
}
