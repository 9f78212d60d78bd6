package set_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	"github.com/deskhive/space-booking-service/internal/service/schedule"
	"github.com/deskhive/space-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOverride    = "некорректные данные override"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSpaceNotFound      = "пространство не найдено"
	msgOverrideNotFound   = "override для даты не найден"
	msgOverrideExists     = "override для даты уже существует"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/spaces/{spaceId}/overrides/{date}?replace=true
// Без replace создание второго override на ту же дату отклоняется с 409
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	partnerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.SpaceID = spaceID
	req.PartnerID = partnerID
	req.Date = vars["date"]
	req.Replace = r.URL.Query().Get("replace") == "true"

	result, err := h.service.SetOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Invalid override: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		case errors.Is(err, schedule.ErrSpaceNotFound):
			h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, schedule.ErrOverrideExists):
			h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Override exists: space_id=%d, date=%s", spaceID, req.Date)
			handlers.RespondConflict(w, msgOverrideExists)

		case errors.Is(err, schedule.ErrOverrideNotFound):
			h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Override not found for replace: space_id=%d, date=%s", spaceID, req.Date)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /spaces/{id}/overrides/{date} - Access denied: space_id=%d, partner_id=%d", spaceID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /spaces/{id}/overrides/{date} - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spaces/{id}/overrides/{date} - Override set: space_id=%d, date=%s, partner_id=%d",
		spaceID, req.Date, partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
