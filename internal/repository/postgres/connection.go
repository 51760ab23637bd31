package postgres

import (
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.Photo{},
		&domain.Comment{},
		&domain.PhotoLike{},
		&domain.Activity{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Session:  NewSessionRepository(db),
		Photo:    NewPhotoRepository(db),
		Comment:  NewCommentRepository(db),
		Like:     NewLikeRepository(db),
		Activity: NewActivityRepository(db),
	}
}
