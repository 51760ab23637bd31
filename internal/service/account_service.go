package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/repository"
)

// PartialFailureError reports a cascade that stopped partway, with the steps
// that did complete. The identity row is only removed in the final step, so a
// partial failure always leaves the account in place.
type PartialFailureError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("account deletion stopped at %q (completed: %s): %v",
		e.Step, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

type AccountService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	photoRepo    repository.PhotoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	activityRepo repository.ActivityRepository
}

func NewAccountService(repos *repository.Repositories) *AccountService {
	return &AccountService{
		userRepo:     repos.User,
		sessionRepo:  repos.Session,
		photoRepo:    repos.Photo,
		commentRepo:  repos.Comment,
		likeRepo:     repos.Like,
		activityRepo: repos.Activity,
	}
}

// DeleteAccount removes the user and everything that references them. The
// order is strip-then-delete: references the user left on other photos go
// before the identity row, so no surviving comment or like ever points at a
// deleted account. Every step is a keyed delete, so re-running after a
// partial failure is safe.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"delete-owned-photos", func(ctx context.Context) error {
			return s.photoRepo.DeleteByOwner(ctx, userID)
		}},
		{"delete-activities", func(ctx context.Context) error {
			return s.activityRepo.DeleteByUser(ctx, userID)
		}},
		{"strip-comments-and-likes", func(ctx context.Context) error {
			if err := s.commentRepo.DeleteByAuthor(ctx, userID); err != nil {
				return err
			}
			return s.likeRepo.DeleteByUser(ctx, userID)
		}},
		{"delete-identity", func(ctx context.Context) error {
			return s.userRepo.Delete(ctx, userID)
		}},
	}

	completed := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return &PartialFailureError{
				Step:      step.name,
				Completed: completed,
				Err:       err,
			}
		}
		completed = append(completed, step.name)
	}

	// The account is gone at this point; a stale session row can no longer
	// resolve, so a failure here is logged rather than reported.
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		log.Printf("ERROR [AccountService.DeleteAccount] invalidate sessions for %s: %v", userID, err)
	}

	return nil
}
