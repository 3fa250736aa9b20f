package handlers_test

import (
	"testing"

	config "github.com/asifrahman99/course_bazaar/configs"
	"github.com/asifrahman99/course_bazaar/handlers"
	"github.com/stretchr/testify/assert"
)

var manualMethod = config.PaymentMethod{
	ID:            "bkash_manual",
	Label:         "bKash (Send Money)",
	RequiresProof: true,
	Currency:      "BDT",
}

var codMethod = config.PaymentMethod{
	ID:       "cod",
	Label:    "Cash on Delivery",
	Currency: "BDT",
}

func authedRequest() *handlers.CheckoutRequest {
	return &handlers.CheckoutRequest{
		CourseSlug:    "golang-bootcamp",
		PaymentMethod: "bkash_manual",
		SenderPhone:   "01712345678",
		TrxID:         "TRX123",
	}
}

func guestRequest() *handlers.CheckoutRequest {
	req := authedRequest()
	req.FullName = "Guest Buyer"
	req.Email = "guest@example.com"
	req.Phone = "01712345678"
	req.Address = "Dhaka"
	return req
}

func TestValidateCheckout_ManualWithoutTrxIDRejected(t *testing.T) {
	req := authedRequest()
	req.TrxID = ""

	err := handlers.ValidateCheckoutRequest(req, manualMethod, true)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "trx_id")
}

func TestValidateCheckout_ManualWithoutSenderPhoneRejected(t *testing.T) {
	req := authedRequest()
	req.SenderPhone = "   "

	err := handlers.ValidateCheckoutRequest(req, manualMethod, true)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sender_phone")
}

func TestValidateCheckout_ManualWithProofAccepted(t *testing.T) {
	assert.NoError(t, handlers.ValidateCheckoutRequest(authedRequest(), manualMethod, true))
}

func TestValidateCheckout_CODNeedsNoProof(t *testing.T) {
	req := authedRequest()
	req.PaymentMethod = "cod"
	req.SenderPhone = ""
	req.TrxID = ""

	assert.NoError(t, handlers.ValidateCheckoutRequest(req, codMethod, true))
}

func TestValidateCheckout_GuestNeedsAccountFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*handlers.CheckoutRequest)
	}{
		{"missing full name", func(r *handlers.CheckoutRequest) { r.FullName = "" }},
		{"missing email", func(r *handlers.CheckoutRequest) { r.Email = "" }},
		{"malformed email", func(r *handlers.CheckoutRequest) { r.Email = "not-an-email" }},
		{"missing phone", func(r *handlers.CheckoutRequest) { r.Phone = "" }},
		{"missing address", func(r *handlers.CheckoutRequest) { r.Address = "" }},
		{"short password", func(r *handlers.CheckoutRequest) { r.Password = "123" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := guestRequest()
			tc.mutate(req)
			assert.Error(t, handlers.ValidateCheckoutRequest(req, manualMethod, false))
		})
	}
}

func TestValidateCheckout_GuestWithAllFieldsAccepted(t *testing.T) {
	assert.NoError(t, handlers.ValidateCheckoutRequest(guestRequest(), manualMethod, false))
}

func TestValidateCheckout_GuestPasswordOptional(t *testing.T) {
	req := guestRequest()
	req.Password = ""

	assert.NoError(t, handlers.ValidateCheckoutRequest(req, manualMethod, false))
}
