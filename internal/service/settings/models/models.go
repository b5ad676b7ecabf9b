package models

import "github.com/m04kA/SMC-AppointmentEngine/internal/domain"

// SettingsResponse политика бронирования бизнеса
type SettingsResponse struct {
	BusinessID                 int64  `json:"businessId"`
	Timezone                   string `json:"timezone"`
	BookingTimeIntervalMinutes int    `json:"bookingTimeIntervalMinutes"`
	BookingFutureLimitDays     int    `json:"bookingFutureLimitDays"`   // 0 = без ограничения
	BookingSimultaneousLimit   int    `json:"bookingSimultaneousLimit"` // 0 = без ограничения
	BookingCancelMinHours      int    `json:"bookingCancelMinHours"`
}

// FromDomainSettings конвертирует domain модель в DTO.
// Интервал отдаётся уже с учётом значения по умолчанию.
func FromDomainSettings(s *domain.BusinessSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	timezone := s.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	return &SettingsResponse{
		BusinessID:                 s.BusinessID,
		Timezone:                   timezone,
		BookingTimeIntervalMinutes: s.Interval(),
		BookingFutureLimitDays:     s.BookingFutureLimitDays,
		BookingSimultaneousLimit:   s.BookingSimultaneousLimit,
		BookingCancelMinHours:      s.BookingCancelMinHours,
	}
}
