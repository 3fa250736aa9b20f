package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Slug        string    `gorm:"size:255;not null;unique" json:"slug"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	Price         float64  `gorm:"type:numeric(10,2);not null" json:"price"`
	DiscountPrice *float64 `gorm:"type:numeric(10,2)" json:"discount_price"`
	Currency      string   `gorm:"size:3;not null;default:'BDT'" json:"currency"`

	ThumbnailURL *string `gorm:"size:500" json:"thumbnail_url"`
	IsPublished  bool    `gorm:"default:false" json:"is_published"`

	Lessons []Lesson `gorm:"foreignkey:CourseID" json:"lessons,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is what a buyer actually pays before coupons: the
// course-level discount price when one is set, otherwise the list price.
func (c *Course) EffectivePrice() float64 {
	if c.DiscountPrice != nil && *c.DiscountPrice < c.Price {
		return *c.DiscountPrice
	}
	return c.Price
}
