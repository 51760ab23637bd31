package service

import (
	"github.com/sam/photo-share-website/internal/config"
	"github.com/sam/photo-share-website/internal/repository"
	"github.com/sam/photo-share-website/internal/storage"
)

type Services struct {
	Auth     *AuthService
	User     *UserService
	Feed     *FeedService
	Photo    *PhotoService
	Account  *AccountService
	Activity *ActivityService
}

func NewServices(repos *repository.Repositories, images storage.ImageStore, notifier ActivityNotifier, cfg *config.Config) *Services {
	activity := NewActivityService(repos.Activity, notifier)
	return &Services{
		Auth:     NewAuthService(repos.User, repos.Session, activity, cfg),
		User:     NewUserService(repos.User),
		Feed:     NewFeedService(repos.User, repos.Photo),
		Photo:    NewPhotoService(repos.Photo, repos.Comment, repos.Like, images, activity),
		Account:  NewAccountService(repos),
		Activity: activity,
	}
}
