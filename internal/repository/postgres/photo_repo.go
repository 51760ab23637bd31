package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"gorm.io/gorm"
)

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *photoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) GetByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Photo, error) {
	var photos []*domain.Photo
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.date_time ASC, comments.id ASC")
		}).
		Preload("Comments.User").
		Preload("Likes").
		Where("user_id = ?", userID).
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes likes and comments before the photo row so a crash midway
// never leaves children pointing at a missing photo.
func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&domain.PhotoLike{}, "photo_id = ?", id).Error; err != nil {
		return err
	}
	if err := tx.Delete(&domain.Comment{}, "photo_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&domain.Photo{}, "id = ?", id).Error
}

func (r *photoRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	owned := tx.Model(&domain.Photo{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("photo_id IN (?)", owned).Delete(&domain.PhotoLike{}).Error; err != nil {
		return err
	}
	owned = tx.Model(&domain.Photo{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("photo_id IN (?)", owned).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&domain.Photo{}, "user_id = ?", userID).Error
}
