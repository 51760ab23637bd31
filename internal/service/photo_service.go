package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"github.com/sam/photo-share-website/internal/storage"
	"gorm.io/gorm"
)

type PhotoService struct {
	photoRepo   repository.PhotoRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	images      storage.ImageStore
	activity    *ActivityService
}

func NewPhotoService(photoRepo repository.PhotoRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, images storage.ImageStore, activity *ActivityService) *PhotoService {
	return &PhotoService{
		photoRepo:   photoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		images:      images,
		activity:    activity,
	}
}

// AddPhoto stores the upload under a timestamped name and creates the photo
// record. The disk write happens first: a create failure leaves an orphan
// file, never a record without bytes.
func (s *PhotoService) AddPhoto(ctx context.Context, ownerID uuid.UUID, data []byte, declaredName string) (*domain.Photo, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyUpload
	}

	fileName := fmt.Sprintf("U%d%s", time.Now().UnixMilli(), filepath.Base(declaredName))
	if err := s.images.Save(fileName, data); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}

	photo := &domain.Photo{
		ID:       uuid.New(),
		UserID:   ownerID,
		FileName: fileName,
		DateTime: time.Now(),
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, err
	}

	s.activity.Record(ownerID, domain.ActivityUploadPhoto, "uploaded a photo", map[string]interface{}{
		"photo_id":  photo.ID,
		"file_name": fileName,
	})

	return photo, nil
}

func (s *PhotoService) AddComment(ctx context.Context, photoID, authorID uuid.UUID, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrEmptyComment
	}

	if _, err := s.getPhoto(ctx, photoID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		PhotoID:  photoID,
		UserID:   authorID,
		Comment:  body,
		DateTime: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.activity.Record(authorID, domain.ActivityNewComment, "commented on a photo", map[string]interface{}{
		"photo_id": photoID,
		"comment":  excerpt(body, 80),
	})

	return comment, nil
}

// Like adds the viewer to the photo's like-set. A like that is already
// present is rejected, never double-counted.
func (s *PhotoService) Like(ctx context.Context, photoID, userID uuid.UUID) error {
	if _, err := s.getPhoto(ctx, photoID); err != nil {
		return err
	}

	added, err := s.likeRepo.Add(ctx, photoID, userID)
	if err != nil {
		return err
	}
	if !added {
		return domain.ErrAlreadyLiked
	}
	return nil
}

func (s *PhotoService) Unlike(ctx context.Context, photoID, userID uuid.UUID) error {
	if _, err := s.getPhoto(ctx, photoID); err != nil {
		return err
	}

	removed, err := s.likeRepo.Remove(ctx, photoID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotLiked
	}
	return nil
}

func (s *PhotoService) DeletePhoto(ctx context.Context, photoID, actorID uuid.UUID) error {
	photo, err := s.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != actorID {
		return domain.ErrNotPhotoOwner
	}
	return s.photoRepo.Delete(ctx, photoID)
}

func (s *PhotoService) DeleteComment(ctx context.Context, photoID, commentID, actorID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}
	if comment.PhotoID != photoID {
		return domain.ErrCommentNotFound
	}
	if comment.UserID != actorID {
		return domain.ErrNotCommentAuthor
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *PhotoService) getPhoto(ctx context.Context, photoID uuid.UUID) (*domain.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

// excerpt trims to max runes, never splitting a multi-byte sequence.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
