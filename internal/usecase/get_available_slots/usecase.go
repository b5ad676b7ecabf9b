package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// UseCase use case для получения доступных слотов сотрудника.
// Только чтение, без транзакции и блокировок.
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOf(req.Date)
	uc.logger.Info("GetAvailableSlots: business=%d, employee=%d, service=%d, date=%s, period=%q",
		req.BusinessID, req.EmployeeID, req.ServiceID, date.Format(domain.DateFormat), req.Period)

	// 2. Расчёт слотов
	result, err := uc.availability.Compute(ctx, availability.Query{
		BusinessID: req.BusinessID,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Date:       date,
		Period:     req.Period,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrEmployeeNotFound):
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		case errors.Is(err, availability.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, availability.ErrServiceInactive), errors.Is(err, availability.ErrServiceNotOffered):
			uc.logger.Warn("GetAvailableSlots: service id=%d unavailable for employee id=%d: %v",
				req.ServiceID, req.EmployeeID, err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotAvailable, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to compute availability: %v", err)
			return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
		}
	}

	// 3. Текущее время бизнеса
	loc, err := result.Settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to resolve timezone: %v", ErrInternal, err)
	}
	now := domain.WallClock(uc.timeProvider.Now(), loc)

	// 4. Прошедшие даты и уже начавшиеся сегодня слоты не предлагаются
	slots := dropStarted(date, result.Slots, now)

	uc.logger.Info("GetAvailableSlots: %d slots for employee=%d, service=%d, date=%s",
		len(slots), req.EmployeeID, req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:       date,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

// dropStarted оставляет слоты, начинающиеся строго после now
func dropStarted(date time.Time, slots []types.TimeString, now time.Time) []types.TimeString {
	today := domain.DateOf(now)
	if date.After(today) {
		return slots
	}

	available := make([]types.TimeString, 0, len(slots))
	if date.Before(today) {
		return available
	}
	for _, slot := range slots {
		if slot.OnDate(date).After(now) {
			available = append(available, slot)
		}
	}
	return available
}
