package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLoginName(ctx context.Context, loginName string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	// GetByOwner loads the user's photos with comments (authors preloaded)
	// and likes attached.
	GetByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Photo, error)
	// Delete removes the photo together with its comments and likes.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByOwner removes every photo owned by userID, comments and likes
	// included, regardless of who authored them.
	DeleteByOwner(ctx context.Context, userID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByAuthor strips the user's comments from every photo.
	DeleteByAuthor(ctx context.Context, userID uuid.UUID) error
}

type LikeRepository interface {
	// Add inserts the (photo, user) membership. Returns false when the user
	// had already liked the photo.
	Add(ctx context.Context, photoID, userID uuid.UUID) (bool, error)
	// Remove deletes the membership. Returns false when it was absent.
	Remove(ctx context.Context, photoID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, photoID uuid.UUID) (int64, error)
	// DeleteByUser removes the user from every photo's like-set.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	// Recent returns up to limit records newest-first, actor preloaded.
	Recent(ctx context.Context, limit int) ([]*domain.Activity, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	User     UserRepository
	Session  SessionRepository
	Photo    PhotoRepository
	Comment  CommentRepository
	Like     LikeRepository
	Activity ActivityRepository
}
