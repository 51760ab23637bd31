package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

// Add is the $addToSet equivalent: a keyed insert that loses to an existing
// row instead of overwriting the whole set.
func (r *likeRepository) Add(ctx context.Context, photoID, userID uuid.UUID) (bool, error) {
	like := &domain.PhotoLike{
		PhotoID:   photoID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) Remove(ctx context.Context, photoID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.PhotoLike{}, "photo_id = ? AND user_id = ?", photoID, userID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, photoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.PhotoLike{}).
		Where("photo_id = ?", photoID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.PhotoLike{}, "user_id = ?", userID).Error
}
