package get_refund_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	"github.com/deskhive/space-booking-service/internal/service/refundpolicy"
)

const (
	msgInvalidPartnerID = "некорректный ID партнёра"
	msgInvalidPolicyID  = "некорректный ID политики"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgPolicyNotFound   = "политика возврата не найдена"
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

// Handle GET /api/v1/partners/{partnerId}/refund-policies/{policyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	policyID, err := strconv.ParseInt(vars["policyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Invalid policy ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPolicyID)
		return
	}

	authID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if authID != partnerID {
		h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Access denied: partner_id=%d, auth_id=%d",
			partnerID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetByID(r.Context(), policyID, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, refundpolicy.ErrPolicyNotFound):
			h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Not found: policy_id=%d", policyID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, refundpolicy.ErrAccessDenied):
			h.logger.Warn("GET /partners/{id}/refund-policies/{policyId} - Access denied: policy_id=%d, partner_id=%d",
				policyID, partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /partners/{id}/refund-policies/{policyId} - Failed: policy_id=%d, error=%v", policyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /partners/{id}/refund-policies/{policyId} - OK: policy_id=%d", policyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
