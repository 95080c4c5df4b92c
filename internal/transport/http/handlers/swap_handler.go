package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/service"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/http/middleware"
	"github.com/InMostCalmness-Rahul/skillswap/pkg/validator"
)

type SwapHandler struct {
	swapService *service.SwapService
}

func NewSwapHandler(swapService *service.SwapService) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

func (h *SwapHandler) Create(w http.ResponseWriter, r *http.Request) {
	sender := middleware.GetUser(r.Context())

	var input service.CreateSwapInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.ToUser == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_TO_USER", "Target user is required")
		return
	}

	if errs := validator.ValidateSwapCreate(input.OfferedSkill, input.RequestedSkill, input.Message, input.MeetingType, input.Duration, input.MeetingDetails); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	req, err := h.swapService.Create(r.Context(), sender, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSwap):
			writeError(w, http.StatusBadRequest, "SELF_REQUEST", "You cannot send a swap request to yourself")
		case errors.Is(err, service.ErrRecipientNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Target user not found or inactive")
		case errors.Is(err, service.ErrPrivateProfile):
			writeError(w, http.StatusForbidden, "PRIVATE_PROFILE", "Cannot send request to private profile")
		case errors.Is(err, service.ErrSkillNotOffered):
			writeError(w, http.StatusBadRequest, "SKILL_NOT_OFFERED", "You must offer this skill in your profile to include it in a swap request")
		case errors.Is(err, service.ErrSkillNotAvailable):
			writeError(w, http.StatusBadRequest, "SKILL_NOT_AVAILABLE", "Target user does not offer the requested skill")
		case errors.Is(err, service.ErrDuplicateRequest):
			writeError(w, http.StatusConflict, "DUPLICATE_REQUEST", "You already have a pending request for this skill exchange")
		default:
			log.WithError(err).Error("create swap request failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Swap request created successfully",
		"swapRequest": req,
	})
}

func (h *SwapHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, limit := parsePagination(r, 20)

	status := domain.SwapStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Unknown status filter")
		return
	}

	reqs, pagination, err := h.swapService.List(r.Context(), userID, service.ListSwapsInput{
		Type:   r.URL.Query().Get("type"),
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.WithError(err).Error("list swap requests failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"requests":   reqs,
		"pagination": pagination,
	})
}

func (h *SwapHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	req, err := h.swapService.Get(r.Context(), userID, requestID)
	if err != nil {
		if errors.Is(err, service.ErrSwapNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Swap request not found")
		} else {
			log.WithError(err).Error("get swap request failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"request": req,
	})
}

func (h *SwapHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	var input service.UpdateSwapStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSwapStatusUpdate(string(input.Status), input.RejectionReason, input.CancellationReason); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	req, err := h.swapService.UpdateStatus(r.Context(), userID, requestID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Swap request not found")
		case errors.Is(err, service.ErrNotRecipient):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the recipient can accept or reject a request")
		case errors.Is(err, service.ErrNotSender):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the sender can cancel a request")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only parties involved can mark the request as completed")
		case errors.Is(err, service.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "INVALID_TRANSITION", "The request cannot move to this status from its current state")
		default:
			log.WithError(err).Error("update swap status failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Request " + string(req.Status) + " successfully",
		"request": req,
	})
}

func (h *SwapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	requestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	if err := h.swapService.Delete(r.Context(), userID, requestID); err != nil {
		switch {
		case errors.Is(err, service.ErrSwapNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Swap request not found")
		case errors.Is(err, service.ErrNotSender):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the sender can delete a request")
		case errors.Is(err, service.ErrNotDeletable):
			writeError(w, http.StatusBadRequest, "NOT_DELETABLE", "Can only delete pending or rejected requests")
		default:
			log.WithError(err).Error("delete swap request failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Request deleted successfully",
	})
}
