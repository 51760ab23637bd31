package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/api/middleware"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/service"
)

type CommentHandler struct {
	photoService *service.PhotoService
}

func NewCommentHandler(photoService *service.PhotoService) *CommentHandler {
	return &CommentHandler{photoService: photoService}
}

type AddCommentRequest struct {
	Comment string `json:"comment"`
}

// Add handles POST /commentsOfPhoto/{photo_id}.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.photoService.AddComment(r.Context(), photoID, userID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyComment):
			http.Error(w, "comment required", http.StatusBadRequest)
		case errors.Is(err, domain.ErrPhotoNotFound):
			http.Error(w, "Photo not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

// Delete handles DELETE /photos/{photoId}/comments/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	photoID, err := uuid.Parse(chi.URLParam(r, "photoId"))
	if err != nil {
		http.Error(w, "Invalid photo ID format", http.StatusBadRequest)
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.photoService.DeleteComment(r.Context(), photoID, commentID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrCommentNotFound):
			http.Error(w, "Comment not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrNotCommentAuthor):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
