package services

import (
	"math"
	"strings"
	"time"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
)

type CouponErrorKind string

const (
	CouponErrNone         CouponErrorKind = ""
	CouponErrInvalidCode  CouponErrorKind = "invalid_code"
	CouponErrExpired      CouponErrorKind = "expired"
	CouponErrExhausted    CouponErrorKind = "exhausted"
	CouponErrBelowMinimum CouponErrorKind = "below_minimum"
)

type CouponResult struct {
	Accepted       bool            `json:"accepted"`
	DiscountAmount float64         `json:"discount_amount"`
	FinalPrice     float64         `json:"final_price"`
	ErrorKind      CouponErrorKind `json:"error_kind,omitempty"`
}

// NormalizeCouponCode trims and upper-cases a buyer-entered code; coupon
// codes are stored upper-cased, so lookup is case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// EvaluateCoupon validates a coupon against a course price at a point in
// time and computes the discount. Checks short-circuit in a fixed order:
// expiry, usage cap, minimum order. It never mutates the coupon;
// redemption counting happens when the order completes.
func EvaluateCoupon(coupon *models.Coupon, coursePrice float64, now time.Time) CouponResult {
	if coupon == nil || !coupon.Active {
		return CouponResult{ErrorKind: CouponErrInvalidCode, FinalPrice: coursePrice}
	}
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return CouponResult{ErrorKind: CouponErrExpired, FinalPrice: coursePrice}
	}
	if coupon.ValidUntil != nil && coupon.ValidUntil.Before(now) {
		return CouponResult{ErrorKind: CouponErrExpired, FinalPrice: coursePrice}
	}
	if coupon.MaxUses != nil && coupon.TimesUsed >= *coupon.MaxUses {
		return CouponResult{ErrorKind: CouponErrExhausted, FinalPrice: coursePrice}
	}
	if coupon.MinOrderAmount > 0 && coursePrice < coupon.MinOrderAmount {
		return CouponResult{ErrorKind: CouponErrBelowMinimum, FinalPrice: coursePrice}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.CouponTypePercentage:
		discount = math.Round(coursePrice * coupon.DiscountValue / 100)
	case models.CouponTypeFixed:
		discount = math.Min(coupon.DiscountValue, coursePrice)
	default:
		return CouponResult{ErrorKind: CouponErrInvalidCode, FinalPrice: coursePrice}
	}

	finalPrice := math.Max(coursePrice-discount, 0)
	return CouponResult{
		Accepted:       true,
		DiscountAmount: discount,
		FinalPrice:     finalPrice,
	}
}

// ApplyCouponCode looks up an active coupon by normalized code and
// evaluates it against the given course price.
func ApplyCouponCode(code string, coursePrice float64) CouponResult {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return CouponResult{ErrorKind: CouponErrInvalidCode, FinalPrice: coursePrice}
	}

	var coupon models.Coupon
	if err := database.DB.Where("code = ? AND active = ?", normalized, true).First(&coupon).Error; err != nil {
		return CouponResult{ErrorKind: CouponErrInvalidCode, FinalPrice: coursePrice}
	}

	return EvaluateCoupon(&coupon, coursePrice, time.Now())
}
