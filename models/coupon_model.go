package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

type Coupon struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code           string     `gorm:"size:50;not null;unique" json:"code"`
	DiscountType   string     `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue  float64    `gorm:"type:numeric(10,2);not null" json:"discount_value"`
	MinOrderAmount float64    `gorm:"type:numeric(10,2);default:0" json:"min_order_amount"`
	MaxUses        *int       `json:"max_uses"`
	TimesUsed      int        `gorm:"not null;default:0" json:"times_used"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	Active         bool       `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
