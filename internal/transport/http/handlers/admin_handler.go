package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
	"github.com/InMostCalmness-Rahul/skillswap/internal/service"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/http/middleware"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 50)

	q := r.URL.Query()
	users, pagination, err := h.adminService.ListUsers(r.Context(), service.AdminListUsersInput{
		Status: q.Get("status"),
		Role:   q.Get("role"),
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.WithError(err).Error("admin list users failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	})
}

func (h *AdminHandler) Swaps(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 50)

	q := r.URL.Query()
	status := domain.SwapStatus(q.Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Unknown status filter")
		return
	}

	reqs, pagination, err := h.adminService.ListSwaps(r.Context(), service.AdminListSwapsInput{
		Status: status,
		Sort:   q.Get("sort"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.WithError(err).Error("admin list swaps failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"requests":   reqs,
		"pagination": pagination,
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		log.WithError(err).Error("admin stats failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if format := q.Get("format"); format != "" && format != "json" {
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "CSV format not yet implemented")
		return
	}

	start, err := parseDateParam(q.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "startDate must be an RFC 3339 date")
		return
	}
	end, err := parseDateParam(q.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", "endDate must be an RFC 3339 date")
		return
	}

	report, err := h.adminService.Report(r.Context(), start, end)
	if err != nil {
		log.WithError(err).Error("admin report failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  report,
	})
}

func (h *AdminHandler) Ban(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	active, err := h.adminService.ToggleBan(r.Context(), adminID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfAction):
			writeError(w, http.StatusBadRequest, "SELF_ACTION", "You cannot ban yourself")
		case errors.Is(err, service.ErrAdminTarget):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot ban another administrator")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.WithError(err).Error("toggle ban failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	message := "User banned successfully"
	if active {
		message = "User unbanned successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  message,
		"isActive": active,
	})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var body struct {
		Confirm bool `json:"confirm"`
	}
	// A missing body means no confirmation.
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := h.adminService.DeleteUser(r.Context(), adminID, targetID, body.Confirm); err != nil {
		switch {
		case errors.Is(err, service.ErrConfirmRequired):
			writeError(w, http.StatusBadRequest, "CONFIRM_REQUIRED", "Deletion must be confirmed")
		case errors.Is(err, service.ErrSelfAction):
			writeError(w, http.StatusBadRequest, "SELF_ACTION", "You cannot delete yourself")
		case errors.Is(err, service.ErrAdminTarget):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot delete another administrator")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			log.WithError(err).Error("admin delete user failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User deleted permanently",
	})
}

// parseDateParam accepts RFC 3339 timestamps or bare dates.
func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
