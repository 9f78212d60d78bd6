package delete_override

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	"github.com/deskhive/space-booking-service/internal/domain"
	"github.com/deskhive/space-booking-service/internal/service/schedule"
)

const (
	msgInvalidSpaceID   = "некорректный ID пространства"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgSpaceNotFound    = "пространство не найдено"
	msgOverrideNotFound = "override для даты не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/spaces/{spaceId}/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	partnerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), partnerID, spaceID, date); err != nil {
		switch {
		case errors.Is(err, schedule.ErrSpaceNotFound):
			h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, schedule.ErrOverrideNotFound):
			h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Override not found: space_id=%d, date=%s",
				spaceID, vars["date"])
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /spaces/{id}/overrides/{date} - Access denied: space_id=%d, partner_id=%d",
				spaceID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /spaces/{id}/overrides/{date} - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /spaces/{id}/overrides/{date} - Override deleted: space_id=%d, date=%s, partner_id=%d",
		spaceID, vars["date"], partnerID)
	w.WriteHeader(http.StatusNoContent)
}
