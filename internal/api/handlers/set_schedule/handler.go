package set_schedule

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
	msgInvalidSchedule    = "некорректное расписание"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSpaceNotFound      = "пространство не найдено"
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

// Handle PUT /api/v1/spaces/{spaceId}/schedule
// Недельный паттерн заменяется целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /spaces/{id}/schedule - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	partnerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /spaces/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.SpaceID = spaceID
	req.PartnerID = partnerID

	result, err := h.service.SetWeeklyPattern(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /spaces/{id}/schedule - Invalid schedule: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedule.ErrSpaceNotFound):
			h.logger.Warn("PUT /spaces/{id}/schedule - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /spaces/{id}/schedule - Access denied: space_id=%d, partner_id=%d", spaceID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /spaces/{id}/schedule - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spaces/{id}/schedule - Schedule updated: space_id=%d, partner_id=%d", spaceID, partnerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
