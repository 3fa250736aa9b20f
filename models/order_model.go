package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CourseID *uuid.UUID `gorm:"type:uuid;index" json:"course_id"`

	Amount        float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency      string  `gorm:"size:3;not null" json:"currency"`
	PaymentMethod string  `gorm:"size:30;not null" json:"payment_method"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`

	// Manual-transfer proof fields, verified by an admin out-of-band.
	SenderPhone *string `gorm:"size:30" json:"sender_phone"`
	TrxID       *string `gorm:"size:100" json:"trx_id"`

	// Gateway correlation id, set by the payment callback.
	TransactionID *string `gorm:"size:255" json:"transaction_id"`

	CouponCode *string `gorm:"size:50" json:"coupon_code"`

	// Client-generated idempotency key; resubmitting the same checkout
	// session maps onto the existing row instead of a duplicate.
	CheckoutSessionID *string `gorm:"size:100;unique" json:"checkout_session_id"`

	User   *User   `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
