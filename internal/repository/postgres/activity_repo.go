package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"gorm.io/gorm"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) Recent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("timestamp DESC, seq DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Activity{}, "user_id = ?", userID).Error
}
