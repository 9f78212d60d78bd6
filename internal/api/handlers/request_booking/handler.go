package request_booking

import (
	"errors"
	"net/http"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	requestBooking "github.com/deskhive/space-booking-service/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSpaceNotFound      = "пространство не найдено"
	msgScheduleNotFound   = "расписание пространства не найдено"
	msgSpaceClosed        = "пространство закрыто в выбранную дату"
	msgOutsideHours       = "интервал выходит за рамки рабочих часов"
	msgOverlapsBooking    = "интервал пересекается с существующим бронированием"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrOutsideHours):
			h.logger.Warn("POST /bookings - Outside hours: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgOutsideHours)

		case errors.Is(err, requestBooking.ErrOverlapsBooking):
			h.logger.Warn("POST /bookings - Overlaps booking: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgOverlapsBooking)

		case errors.Is(err, requestBooking.ErrSpaceClosed):
			h.logger.Warn("POST /bookings - Space closed: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgSpaceClosed)

		case errors.Is(err, requestBooking.ErrSpaceNotFound):
			h.logger.Warn("POST /bookings - Space not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, requestBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: space_id=%d", req.SpaceID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, requestBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, space_id=%d, error=%v", userID, req.SpaceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, space_id=%d, error=%v",
				userID, req.SpaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, space_id=%d",
		result.ID, userID, req.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
