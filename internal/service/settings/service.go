package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/settings/models"
)

// Service сервис политики бронирования бизнеса
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings читает настройки бизнеса при каждом вызове.
// Если бизнес их не заводил, возвращаются значения по умолчанию.
func (s *Service) GetSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	settings, err := s.settingsRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetSettings: using default settings for business=%d", businessID)
			return domain.DefaultSettings(businessID), nil
		}
		s.logger.Error("GetSettings: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %w", ErrInternal, err)
	}

	if err := settings.Validate(); err != nil {
		s.logger.Error("GetSettings: stored settings of business=%d are invalid: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if _, err := settings.Location(); err != nil {
		s.logger.Error("GetSettings: business=%d has unknown timezone: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return settings, nil
}

// Get возвращает настройки бизнеса в виде DTO
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d", businessID)

	settings, err := s.GetSettings(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings), nil
}
