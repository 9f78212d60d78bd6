package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/domain"
	getAvailability "github.com/deskhive/space-booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidSpaceID     = "некорректный ID пространства"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate        = "отсутствует параметр date"
	msgSpaceNotFound      = "пространство не найдено"
	msgScheduleNotFound   = "расписание пространства не найдено"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	spaceID, err := strconv.ParseInt(vars["spaceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /spaces/{id}/availability - Missing date parameter: space_id=%d", spaceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		SpaceID: spaceID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSpaceNotFound):
			h.logger.Warn("GET /spaces/{id}/availability - Space not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, getAvailability.ErrScheduleNotFound):
			h.logger.Warn("GET /spaces/{id}/availability - Schedule not found: space_id=%d", spaceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /spaces/{id}/availability - Invalid input: space_id=%d, error=%v", spaceID, err)
			handlers.RespondBadRequest(w, msgInvalidSpaceID)

		default:
			h.logger.Error("GET /spaces/{id}/availability - Failed: space_id=%d, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/availability - OK: space_id=%d, date=%s, free_slots=%d",
		spaceID, dateStr, len(result.FreeSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
