package domain

import (
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID       uuid.UUID `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	FileName string    `json:"file_name" gorm:"not null"`
	DateTime time.Time `json:"date_time" gorm:"not null"`

	Comments []Comment   `json:"comments,omitempty" gorm:"foreignKey:PhotoID"`
	Likes    []PhotoLike `json:"-" gorm:"foreignKey:PhotoID"`
}

type Comment struct {
	ID       uuid.UUID `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PhotoID  uuid.UUID `json:"photo_id" gorm:"type:uuid;index;not null"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	Comment  string    `json:"comment" gorm:"not null"`
	DateTime time.Time `json:"date_time" gorm:"not null"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// PhotoLike is one membership of a photo's like-set. The composite primary
// key makes duplicate likes impossible at the store level; inserts go through
// ON CONFLICT DO NOTHING so concurrent likes never clobber each other.
type PhotoLike struct {
	PhotoID   uuid.UUID `json:"photo_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `json:"createdAt"`
}
