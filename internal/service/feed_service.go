package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"gorm.io/gorm"
)

type FeedService struct {
	userRepo  repository.UserRepository
	photoRepo repository.PhotoRepository
}

func NewFeedService(userRepo repository.UserRepository, photoRepo repository.PhotoRepository) *FeedService {
	return &FeedService{
		userRepo:  userRepo,
		photoRepo: photoRepo,
	}
}

type CommentAuthor struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type EnrichedComment struct {
	ID       uuid.UUID     `json:"_id"`
	Comment  string        `json:"comment"`
	DateTime time.Time     `json:"date_time"`
	User     CommentAuthor `json:"user"`
}

type EnrichedPhoto struct {
	ID            uuid.UUID         `json:"_id"`
	UserID        uuid.UUID         `json:"user_id"`
	FileName      string            `json:"file_name"`
	DateTime      time.Time         `json:"date_time"`
	Comments      []EnrichedComment `json:"comments"`
	LikeCount     int               `json:"like_count"`
	LikedByViewer bool              `json:"liked_by_viewer"`
}

// PhotosForUser returns the user's photos enriched with resolved comment
// authors and like data, ordered most-liked first, then newest, with the
// photo id as the final tie-break so equal keys stay deterministic.
func (s *FeedService) PhotosForUser(ctx context.Context, userID, viewerID uuid.UUID) ([]*EnrichedPhoto, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	photos, err := s.photoRepo.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]*EnrichedPhoto, 0, len(photos))
	for _, photo := range photos {
		ep := &EnrichedPhoto{
			ID:       photo.ID,
			UserID:   photo.UserID,
			FileName: photo.FileName,
			DateTime: photo.DateTime,
			Comments: make([]EnrichedComment, 0, len(photo.Comments)),
		}

		for _, comment := range photo.Comments {
			if comment.User == nil {
				// The cascade contract makes this unreachable; a store edited
				// by hand could still get here, so drop the comment rather
				// than render a dangling author.
				log.Printf("ERROR [FeedService.PhotosForUser] comment %s on photo %s has no resolvable author %s",
					comment.ID, photo.ID, comment.UserID)
				continue
			}
			ep.Comments = append(ep.Comments, EnrichedComment{
				ID:       comment.ID,
				Comment:  comment.Comment,
				DateTime: comment.DateTime,
				User: CommentAuthor{
					ID:        comment.User.ID,
					FirstName: comment.User.FirstName,
					LastName:  comment.User.LastName,
				},
			})
		}

		ep.LikeCount = len(photo.Likes)
		for _, like := range photo.Likes {
			if like.UserID == viewerID {
				ep.LikedByViewer = true
				break
			}
		}

		enriched = append(enriched, ep)
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		if enriched[i].LikeCount != enriched[j].LikeCount {
			return enriched[i].LikeCount > enriched[j].LikeCount
		}
		if !enriched[i].DateTime.Equal(enriched[j].DateTime) {
			return enriched[i].DateTime.After(enriched[j].DateTime)
		}
		return enriched[i].ID.String() < enriched[j].ID.String()
	})

	return enriched, nil
}
