package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"gorm.io/datatypes"
)

const recordTimeout = 5 * time.Second

// ActivityNotifier receives freshly recorded activities for live delivery.
type ActivityNotifier interface {
	ActivityRecorded(activity *domain.Activity)
}

type ActivityService struct {
	activityRepo repository.ActivityRepository
	notifier     ActivityNotifier
}

func NewActivityService(activityRepo repository.ActivityRepository, notifier ActivityNotifier) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// Record writes an activity in the background. Logging is a side channel of
// the primary operation: failures are logged, never propagated, and the
// caller does not wait for the write.
func (s *ActivityService) Record(userID uuid.UUID, kind domain.ActivityKind, description string, detail map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := s.record(ctx, userID, kind, description, detail); err != nil {
			log.Printf("ERROR [ActivityService.Record] %s for user %s: %v", kind, userID, err)
		}
	}()
}

func (s *ActivityService) record(ctx context.Context, userID uuid.UUID, kind domain.ActivityKind, description string, detail map[string]interface{}) error {
	var detailJSON datatypes.JSON
	if detail != nil {
		data, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		detailJSON = datatypes.JSON(data)
	}

	activity := &domain.Activity{
		ID:          uuid.New(),
		UserID:      userID,
		Action:      kind,
		Description: description,
		Detail:      detailJSON,
		Timestamp:   time.Now(),
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.ActivityRecorded(activity)
	}
	return nil
}

// ActivityView is one feed entry with the actor's name resolved.
type ActivityView struct {
	ID          uuid.UUID           `json:"_id"`
	UserID      uuid.UUID           `json:"user_id"`
	UserName    string              `json:"user_name"`
	Action      domain.ActivityKind `json:"action"`
	Description string              `json:"description"`
	Detail      datatypes.JSON      `json:"detail,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
}

// Recent returns up to limit activities newest-first. Records of a deleted
// account do not exist (the cascade removes them), so every entry has a
// resolvable actor.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*ActivityView, error) {
	activities, err := s.activityRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*ActivityView, 0, len(activities))
	for _, a := range activities {
		view := &ActivityView{
			ID:          a.ID,
			UserID:      a.UserID,
			Action:      a.Action,
			Description: a.Description,
			Detail:      a.Detail,
			Timestamp:   a.Timestamp,
		}
		if a.User != nil {
			view.UserName = a.User.FirstName + " " + a.User.LastName
		}
		views = append(views, view)
	}
	return views, nil
}
