package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityKind string

const (
	ActivityAccountCreated ActivityKind = "account-created"
	ActivityLogin          ActivityKind = "login"
	ActivityLogout         ActivityKind = "logout"
	ActivityUploadPhoto    ActivityKind = "upload-photo"
	ActivityNewComment     ActivityKind = "new-comment"
)

func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityAccountCreated, ActivityLogin, ActivityLogout, ActivityUploadPhoto, ActivityNewComment:
		return true
	}
	return false
}

// Activity is one append-only record of a user action. Seq is a bigserial
// that breaks equal-timestamp ties in the feed.
type Activity struct {
	ID          uuid.UUID      `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Seq         int64          `json:"-" gorm:"autoIncrement;uniqueIndex"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;index;not null"`
	Action      ActivityKind   `json:"action" gorm:"not null"`
	Description string         `json:"description"`
	Detail      datatypes.JSON `json:"detail,omitempty"`
	Timestamp   time.Time      `json:"timestamp" gorm:"index;not null"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}
