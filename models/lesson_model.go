package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	VideoURL  *string   `gorm:"size:500" json:"video_url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsPreview bool      `gorm:"default:false" json:"is_preview"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
