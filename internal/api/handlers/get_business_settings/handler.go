package get_business_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentEngine/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/settings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidSettings   = "настройки бизнеса некорректны"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/settings
// Для бизнеса без настроек возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.Get(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidSettings) {
			h.logger.Error("GET /businesses/{id}/settings - Invalid settings stored: business_id=%d, error=%v", businessID, err)
			handlers.RespondUnprocessable(w, msgInvalidSettings)
			return
		}
		h.logger.Error("GET /businesses/{id}/settings - Failed to get settings: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/settings - Settings retrieved: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
