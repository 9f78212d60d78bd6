package upsert_refund_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/deskhive/space-booking-service/internal/api/handlers"
	"github.com/deskhive/space-booking-service/internal/api/middleware"
	"github.com/deskhive/space-booking-service/internal/service/refundpolicy"
	"github.com/deskhive/space-booking-service/internal/service/refundpolicy/models"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнёра"
	msgInvalidPolicyID    = "некорректный ID политики"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректная политика возврата"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPolicyNotFound     = "политика возврата не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/partners/{partnerId}/refund-policies
// и PUT /api/v1/partners/{partnerId}/refund-policies/{policyId}
// Установка isDefault атомарно снимает флаг с предыдущего дефолта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/refund-policies - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	authID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /partners/{id}/refund-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Партнёр управляет только своими политиками
	if authID != partnerID {
		h.logger.Warn("POST /partners/{id}/refund-policies - Access denied: partner_id=%d, auth_id=%d",
			partnerID, authID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners/{id}/refund-policies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.PartnerID = partnerID

	// PUT несёт ID политики в пути
	status := http.StatusCreated
	if policyIDStr, ok := vars["policyId"]; ok {
		policyID, err := strconv.ParseInt(policyIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("PUT /partners/{id}/refund-policies/{policyId} - Invalid policy ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPolicyID)
			return
		}
		req.PolicyID = &policyID
		status = http.StatusOK
	}

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, refundpolicy.ErrInvalidInput):
			h.logger.Warn("POST /partners/{id}/refund-policies - Invalid policy: partner_id=%d, error=%v",
				partnerID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		case errors.Is(err, refundpolicy.ErrPolicyNotFound):
			h.logger.Warn("POST /partners/{id}/refund-policies - Policy not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, refundpolicy.ErrAccessDenied):
			h.logger.Warn("POST /partners/{id}/refund-policies - Access denied: partner_id=%d", partnerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /partners/{id}/refund-policies - Failed: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/refund-policies - Policy saved: policy_id=%d, partner_id=%d",
		result.ID, partnerID)
	handlers.RespondJSON(w, status, result)
}
