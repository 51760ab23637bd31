package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sam/photo-share-website/internal/api/handlers"
	"github.com/sam/photo-share-website/internal/api/middleware"
	"github.com/sam/photo-share-website/internal/config"
	"github.com/sam/photo-share-website/internal/service"
	"github.com/sam/photo-share-website/internal/storage"
	"github.com/sam/photo-share-website/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, images storage.ImageStore, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User, services.Account)
	photoHandler := handlers.NewPhotoHandler(services.Photo, services.Feed, images, cfg.MaxUploadBytes)
	commentHandler := handlers.NewCommentHandler(services.Photo)
	activityHandler := handlers.NewActivityHandler(services.Activity)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// Public routes
	r.Post("/admin/login", authHandler.Login)
	r.Post("/user", authHandler.Register)

	// Logout succeeds even without a live session
	r.Post("/admin/logout", authHandler.Logout)

	// WebSocket endpoint (token-authenticated in the handler)
	r.Get("/ws", wsHandler.Handle)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Get("/user/list", userHandler.List)
		r.Delete("/user/delete", userHandler.DeleteAccount)
		r.Get("/user/{id}", userHandler.Get)

		r.Get("/photosOfUser/{id}", photoHandler.PhotosOfUser)
		r.Post("/photos/new", photoHandler.Upload)
		r.Post("/photos/{photo_id}/like", photoHandler.Like)
		r.Post("/photos/{photo_id}/unlike", photoHandler.Unlike)
		r.Delete("/photos/{photoId}/comments/{commentId}", commentHandler.Delete)
		r.Delete("/photos/{photoId}", photoHandler.Delete)

		r.Post("/commentsOfPhoto/{photo_id}", commentHandler.Add)

		r.Get("/activities", activityHandler.List)

		r.Get("/images/{fileName}", photoHandler.Image)
	})

	return r
}
