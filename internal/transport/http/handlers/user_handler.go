package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/service"
	"github.com/InMostCalmness-Rahul/skillswap/internal/transport/http/middleware"
	"github.com/InMostCalmness-Rahul/skillswap/pkg/validator"
)

const maxPhotoSize = 5 << 20 // 5 MB

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UserHandler struct {
	userService *service.UserService
	uploadDir   string
}

func NewUserHandler(userService *service.UserService, uploadDir string) *UserHandler {
	return &UserHandler{
		userService: userService,
		uploadDir:   uploadDir,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(input.Name, input.Location, input.Bio, input.SkillsOffered, input.SkillsWanted, input.Availability); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.WithError(err).Error("update profile failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		log.WithError(err).Error("delete account failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Account deactivated successfully",
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	page, limit := parsePagination(r, 20)

	q := r.URL.Query()
	users, pagination, err := h.userService.Search(r.Context(), callerID, service.SearchUsersInput{
		Skill:        q.Get("skill"),
		Location:     q.Get("location"),
		Availability: q.Get("availability"),
		Sort:         q.Get("sort"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		log.WithError(err).Error("search users failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	})
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, feedbacks, err := h.userService.GetPublicProfile(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.WithError(err).Error("get profile failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"user":     user,
		"feedback": feedbacks,
	})
}

func (h *UserHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	from := middleware.GetUser(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var input service.AddFeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateFeedback(input.Rating, input.Comment); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	fb, err := h.userService.AddFeedback(r.Context(), from, targetID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFeedback):
			writeError(w, http.StatusBadRequest, "SELF_FEEDBACK", "You cannot leave feedback for yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrDuplicateFeedback):
			writeError(w, http.StatusConflict, "DUPLICATE_FEEDBACK", "You have already rated this user")
		default:
			log.WithError(err).Error("add feedback failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Feedback added successfully",
		"feedback": fb,
	})
}

// UploadPhoto stores the profile image on local disk under the upload
// dir, named after the user so re-uploads replace the previous file.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "FILE_TOO_LARGE", "Photo must be smaller than 5 MB")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "No photo provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		writeError(w, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only jpg, jpeg, png, gif and webp images are allowed")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.WithError(err).Error("creating upload dir failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	name := userID.String() + ext
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		log.WithError(err).Error("creating photo file failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.WithError(err).Error("writing photo file failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	user, err := h.userService.SetProfilePhoto(r.Context(), userID, "/uploads/"+name)
	if err != nil {
		log.WithError(err).Error("updating profile photo failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Photo uploaded successfully",
		"user":    user,
	})
}

// parsePagination reads page/limit query params, clamping to sane
// bounds. limit is capped at 100.
func parsePagination(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
