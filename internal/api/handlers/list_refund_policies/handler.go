package list_refund_policies

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
)

const (
	msgInvalidPartnerID = "некорректный ID партнёра"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/partners/{partnerId}/refund-policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/refund-policies - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	authID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /partners/{id}/refund-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if authID != partnerID {
		h.logger.Warn("GET /partners/{id}/refund-policies - Access denied: partner_id=%d, auth_id=%d",
			partnerID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.ListByPartner(r.Context(), partnerID)
	if err != nil {
		h.logger.Error("GET /partners/{id}/refund-policies - Failed: partner_id=%d, error=%v", partnerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /partners/{id}/refund-policies - OK: partner_id=%d, count=%d",
		partnerID, len(result.Policies))
	handlers.RespondJSON(w, http.StatusOK, result)
}
