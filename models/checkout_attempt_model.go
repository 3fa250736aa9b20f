package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutAttempt struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string    `gorm:"size:255" json:"email"`
	Phone       string    `gorm:"size:30" json:"phone"`
	FullName    string    `gorm:"size:255" json:"full_name"`
	CourseSlug  string    `gorm:"size:255" json:"course_slug"`
	CourseTitle string    `gorm:"size:255" json:"course_title"`
	IPAddress   string    `gorm:"size:45" json:"ip_address"`
	IsConverted bool      `gorm:"default:false;index" json:"is_converted"`

	CreatedAt time.Time `json:"created_at"`
}
