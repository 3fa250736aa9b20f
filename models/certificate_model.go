package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificates_user_course" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_certificates_user_course" json:"course_id"`
	CertificateURL string    `gorm:"size:500;not null" json:"certificate_url"`
	IssuedAt       time.Time `json:"issued_at"`

	CreatedAt time.Time `json:"created_at"`
}
