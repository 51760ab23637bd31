package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/api/middleware"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/service"
	"github.com/sam/photo-share-website/internal/storage"
)

// uploadField is the multipart field name the client submits photos under.
const uploadField = "uploadedphoto"

type PhotoHandler struct {
	photoService *service.PhotoService
	feedService  *service.FeedService
	images       storage.ImageStore
	maxUpload    int64
}

func NewPhotoHandler(photoService *service.PhotoService, feedService *service.FeedService, images storage.ImageStore, maxUpload int64) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		feedService:  feedService,
		images:       images,
		maxUpload:    maxUpload,
	}
}

// PhotosOfUser handles GET /photosOfUser/{id}.
func (h *PhotoHandler) PhotosOfUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user ID format", http.StatusBadRequest)
		return
	}

	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	photos, err := h.feedService.PhotosForUser(r.Context(), userID, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(photos)
}

// Upload handles POST /photos/new.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		http.Error(w, "photo required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "error reading photo", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.AddPhoto(r.Context(), userID, data, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyUpload) {
			http.Error(w, "photo required", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(photo)
}

// Like handles POST /photos/{photo_id}/like.
func (h *PhotoHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.mutateLike(w, r, h.photoService.Like, "already liked")
}

// Unlike handles POST /photos/{photo_id}/unlike.
func (h *PhotoHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.mutateLike(w, r, h.photoService.Unlike, "not liked")
}

func (h *PhotoHandler) mutateLike(w http.ResponseWriter, r *http.Request, mutate func(ctx context.Context, photoID, userID uuid.UUID) error, conflictMsg string) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photo_id"))
	if err != nil {
		http.Error(w, "Invalid photo ID format", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := mutate(r.Context(), photoID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			http.Error(w, "Photo not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrAlreadyLiked), errors.Is(err, domain.ErrNotLiked):
			http.Error(w, conflictMsg, http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Delete handles DELETE /photos/{photoId}.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoId"))
	if err != nil {
		http.Error(w, "Invalid photo ID format", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.photoService.DeletePhoto(r.Context(), photoID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPhotoNotFound):
			http.Error(w, "Photo not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotPhotoOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// Image handles GET /images/{fileName}, serving stored photo bytes.
func (h *PhotoHandler) Image(w http.ResponseWriter, r *http.Request) {
	path, err := h.images.Path(chi.URLParam(r, "fileName"))
	if err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}
