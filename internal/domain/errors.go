package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Ожидаемые бизнес-исходы бронирования и отмены.
// Конкретные ошибки ниже матчатся на них через errors.Is и несут данные для сообщения пользователю.
var (
	ErrSlotUnavailable           = errors.New("slot is no longer available")
	ErrFutureLimitExceeded       = errors.New("booking date is outside the booking horizon")
	ErrSimultaneousLimitExceeded = errors.New("client has too many open appointments")
	ErrCancellationWindow        = errors.New("cancellation window has passed")
	ErrAlreadyCanceled           = errors.New("appointment is already canceled")
	ErrInvalidTransition         = errors.New("appointment status transition is not allowed")
)

// SlotUnavailableError выбранный слот занят, попал в выходной или проигран в гонке при вставке
type SlotUnavailableError struct {
	Date     time.Time
	Slot     types.TimeString
	Conflict *TimeRange // пересекающаяся запись, если известна
}

func (e *SlotUnavailableError) Error() string {
	msg := fmt.Sprintf("slot %s %s is no longer available", e.Date.Format(DateFormat), e.Slot)
	if e.Conflict != nil {
		msg += fmt.Sprintf(" (conflicts with %s-%s)",
			e.Conflict.Start.Format(TimeFormat), e.Conflict.End.Format(TimeFormat))
	}
	return msg
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

// FutureLimitExceededError дата записи раньше сегодняшней или дальше горизонта бронирования
type FutureLimitExceededError struct {
	Date      time.Time
	Today     time.Time
	LimitDays int // 0 = без ограничения (ошибка только для прошедшей даты)
}

// MaxDate last bookable date, zero when unlimited
func (e *FutureLimitExceededError) MaxDate() time.Time {
	if e.LimitDays <= 0 {
		return time.Time{}
	}
	return e.Today.AddDate(0, 0, e.LimitDays)
}

func (e *FutureLimitExceededError) Error() string {
	if e.Date.Before(e.Today) {
		return fmt.Sprintf("booking date %s is in the past", e.Date.Format(DateFormat))
	}
	return fmt.Sprintf("booking date %s is more than %d day(s) ahead (last bookable date %s)",
		e.Date.Format(DateFormat), e.LimitDays, e.MaxDate().Format(DateFormat))
}

func (e *FutureLimitExceededError) Is(target error) bool {
	return target == ErrFutureLimitExceeded
}

// SimultaneousLimitExceededError у клиента уже максимум открытых будущих записей
type SimultaneousLimitExceededError struct {
	Limit  int
	Active int
}

func (e *SimultaneousLimitExceededError) Error() string {
	return fmt.Sprintf("client already has %d open appointment(s), limit is %d", e.Active, e.Limit)
}

func (e *SimultaneousLimitExceededError) Is(target error) bool {
	return target == ErrSimultaneousLimitExceeded
}

// CancellationWindowError отмена внутри минимального окна уведомления
type CancellationWindowError struct {
	MinHours        int
	HoursUntilStart float64
}

// Message renders the threshold for the user, in days when it is 24 hours or more
func (e *CancellationWindowError) Message() string {
	if e.MinHours >= 24 {
		days := strconv.FormatFloat(float64(e.MinHours)/24, 'f', -1, 64)
		return fmt.Sprintf("cancellation is only allowed up to %s day(s) before the scheduled time", days)
	}
	return fmt.Sprintf("cancellation is only allowed up to %d hour(s) before the scheduled time", e.MinHours)
}

func (e *CancellationWindowError) Error() string {
	return e.Message()
}

func (e *CancellationWindowError) Is(target error) bool {
	return target == ErrCancellationWindow
}

// AlreadyCanceledError повторная отмена
type AlreadyCanceledError struct {
	AppointmentID int64
}

func (e *AlreadyCanceledError) Error() string {
	return fmt.Sprintf("appointment %d is already canceled", e.AppointmentID)
}

func (e *AlreadyCanceledError) Is(target error) bool {
	return target == ErrAlreadyCanceled
}
