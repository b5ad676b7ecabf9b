package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/txmanager"
)

// UseCase сценарий бронирования слота.
// Проверка доступности, лимитов и вставка выполняются в одной SERIALIZABLE транзакции,
// двойное бронирование дополнительно отсекается exclusion constraint в БД.
type UseCase struct {
	availability    AvailabilityService
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	availability AvailabilityService,
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует слот req.StartTime на дату req.Date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.record(outcomeRejected)
		return nil, err
	}

	date := domain.DateOf(req.Date)
	var created *domain.Appointment

	// 2. Всё остальное в одной транзакции. При serialization failure менеджер повторит её целиком.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = nil

		// 2.1 Актуальный набор слотов (записи сотрудника на дату блокируются)
		result, err := uc.availability.Compute(txCtx, availability.Query{
			BusinessID: req.BusinessID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			Date:       date,
		})
		if err != nil {
			return uc.mapAvailabilityError(err)
		}

		settings := result.Settings
		loc, err := settings.Location()
		if err != nil {
			return fmt.Errorf("%w: resolve timezone: %v", ErrInternal, err)
		}
		now := domain.WallClock(uc.timeProvider.Now(), loc)
		today := domain.DateOf(now)

		// 2.2 Слот должен быть в списке доступных
		if !containsSlot(result, req) {
			unavailable := &domain.SlotUnavailableError{Date: date, Slot: req.StartTime}
			if conflict := availability.FirstConflict(date, req.StartTime, result.Service.DurationMinutes, result.Appointments); conflict != nil {
				r := conflict.Range()
				unavailable.Conflict = &r
			}
			uc.logger.Info("CreateBooking: slot %s %s is unavailable for employee=%d",
				date.Format(domain.DateFormat), req.StartTime, req.EmployeeID)
			return unavailable
		}

		// 2.3 Горизонт бронирования
		if date.Before(today) || (settings.HasFutureLimit() && date.After(today.AddDate(0, 0, settings.BookingFutureLimitDays))) {
			uc.logger.Info("CreateBooking: date %s is outside the horizon (today=%s, limit=%d)",
				date.Format(domain.DateFormat), today.Format(domain.DateFormat), settings.BookingFutureLimitDays)
			return &domain.FutureLimitExceededError{
				Date:      date,
				Today:     today,
				LimitDays: settings.BookingFutureLimitDays,
			}
		}

		// 2.4 Уже начавшийся сегодня слот недоступен
		start := req.StartTime.OnDate(date)
		if !start.After(now) {
			return &domain.SlotUnavailableError{Date: date, Slot: req.StartTime}
		}

		// 2.5 Клиент: поиск по телефону или создание
		client, err := uc.clientRepo.Upsert(txCtx, &domain.Client{
			BusinessID: req.BusinessID,
			Name:       req.ClientName,
			Phone:      req.ClientPhone,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert client: %v", err)
			return fmt.Errorf("%w: upsert client: %w", ErrInternal, err)
		}

		// 2.6 Лимит одновременных записей клиента
		if settings.HasSimultaneousLimit() {
			active, err := uc.appointmentRepo.CountOpenByClient(txCtx, req.BusinessID, client.ID, now)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to count open appointments for client=%d: %v", client.ID, err)
				return fmt.Errorf("%w: count open appointments: %w", ErrInternal, err)
			}
			if active >= settings.BookingSimultaneousLimit {
				uc.logger.Info("CreateBooking: client=%d has %d open appointments, limit=%d",
					client.ID, active, settings.BookingSimultaneousLimit)
				return &domain.SimultaneousLimitExceededError{
					Limit:  settings.BookingSimultaneousLimit,
					Active: active,
				}
			}
		}

		// 2.7 Вставка. Пересечение, пропущенное проверкой, отсекается ограничением в БД.
		clientID := client.ID
		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID: req.BusinessID,
			EmployeeID: req.EmployeeID,
			ServiceID:  req.ServiceID,
			ClientID:   &clientID,
			Start:      start,
			End:        start.Add(time.Duration(result.Service.DurationMinutes) * time.Minute),
			Status:     domain.StatusScheduled,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				uc.logger.Warn("CreateBooking: lost race for slot %s %s employee=%d",
					date.Format(domain.DateFormat), req.StartTime, req.EmployeeID)
				return &domain.SlotUnavailableError{Date: date, Slot: req.StartTime}
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create appointment: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		err = uc.mapTxError(err, req)
		uc.record(outcomeOf(err))
		return nil, err
	}

	uc.record(outcomeCreated)
	uc.logger.Info("CreateBooking: created appointment id=%d employee=%d start=%s",
		created.ID, created.EmployeeID, created.Start.Format(time.DateTime))

	return toResponse(created), nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, availability.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, availability.ErrServiceInactive), errors.Is(err, availability.ErrServiceNotOffered):
		return fmt.Errorf("%w: %v", ErrServiceNotAvailable, err)
	default:
		uc.logger.Error("CreateBooking: failed to compute availability: %v", err)
		return fmt.Errorf("%w: compute availability: %w", ErrInternal, err)
	}
}

// mapTxError переводит ошибки самой транзакции. Исчерпанные повторы serializable-транзакции
// значат, что слот забрала параллельная запись.
func (uc *UseCase) mapTxError(err error, req *Request) error {
	switch {
	case txmanager.IsRetryable(err):
		uc.logger.Warn("CreateBooking: retries exhausted for slot %s %s employee=%d: %v",
			req.Date.Format(domain.DateFormat), req.StartTime, req.EmployeeID, err)
		return &domain.SlotUnavailableError{Date: domain.DateOf(req.Date), Slot: req.StartTime}
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommitTx):
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	default:
		return err
	}
}

func (uc *UseCase) record(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(outcome)
	}
}

func containsSlot(result *availability.Result, req *Request) bool {
	for _, slot := range result.Slots {
		if slot.Equal(req.StartTime) {
			return true
		}
	}
	return false
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotUnavailable):
		return outcomeSlotUnavailable
	case errors.Is(err, domain.ErrFutureLimitExceeded):
		return outcomeFutureLimit
	case errors.Is(err, domain.ErrSimultaneousLimitExceeded):
		return outcomeSimultaneousLimit
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}

func toResponse(a *domain.Appointment) *Response {
	var clientID int64
	if a.ClientID != nil {
		clientID = *a.ClientID
	}
	return &Response{
		ID:         a.ID,
		BusinessID: a.BusinessID,
		EmployeeID: a.EmployeeID,
		ServiceID:  a.ServiceID,
		ClientID:   clientID,
		Start:      a.Start,
		End:        a.End,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
