package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// BlockingType how much of the day a holiday blocks
type BlockingType string

const (
	BlockingNone      BlockingType = "none"
	BlockingFullDay   BlockingType = "full_day"
	BlockingMorning   BlockingType = "morning"
	BlockingAfternoon BlockingType = "afternoon"
	BlockingCustom    BlockingType = "custom"
)

var ErrInvalidHoliday = errors.New("invalid holiday")

// Holiday выходной или сокращённый день бизнеса
type Holiday struct {
	ID           int64
	BusinessID   int64
	Date         time.Time
	Name         string
	BlockingType BlockingType
	CustomStart  *types.TimeString
	CustomEnd    *types.TimeString
	IsActive     bool
}

// OnDate returns true if the holiday falls on the calendar date
func (h *Holiday) OnDate(date time.Time) bool {
	hy, hm, hd := h.Date.Date()
	y, m, d := date.Date()
	return hy == y && hm == m && hd == d
}

// Validate checks the blocking type and that a custom holiday has both bounds
func (h *Holiday) Validate() error {
	switch h.BlockingType {
	case BlockingNone, BlockingFullDay, BlockingMorning, BlockingAfternoon:
		return nil
	case BlockingCustom:
		if h.CustomStart == nil || h.CustomEnd == nil || h.CustomStart.IsZero() || h.CustomEnd.IsZero() {
			return fmt.Errorf("%w: holiday %d: custom range needs both start and end", ErrInvalidHoliday, h.ID)
		}
		if err := h.CustomStart.Validate(); err != nil {
			return fmt.Errorf("%w: holiday %d: custom start: %v", ErrInvalidHoliday, h.ID, err)
		}
		if err := h.CustomEnd.Validate(); err != nil {
			return fmt.Errorf("%w: holiday %d: custom end: %v", ErrInvalidHoliday, h.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: holiday %d: unknown blocking type %q", ErrInvalidHoliday, h.ID, h.BlockingType)
	}
}
