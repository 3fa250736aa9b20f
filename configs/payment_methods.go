package config

// PaymentMethod describes one way a buyer can settle an order. Manual
// methods are confirmed out-of-band by an admin matching the submitted
// transaction id; gateway methods redirect to a hosted checkout page.
type PaymentMethod struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	RequiresProof   bool   `json:"requires_proof"`
	RecipientNumber string `json:"recipient_number,omitempty"`
	IsGateway       bool   `json:"is_gateway"`
	Currency        string `json:"currency"`
}

var paymentMethods map[string]PaymentMethod

func LoadPaymentMethods() {
	paymentMethods = map[string]PaymentMethod{
		"bkash_manual": {
			ID:              "bkash_manual",
			Label:           "bKash (Send Money)",
			RequiresProof:   true,
			RecipientNumber: Config("BKASH_RECIPIENT_NUMBER"),
			Currency:        "BDT",
		},
		"nagad_manual": {
			ID:              "nagad_manual",
			Label:           "Nagad (Send Money)",
			RequiresProof:   true,
			RecipientNumber: Config("NAGAD_RECIPIENT_NUMBER"),
			Currency:        "BDT",
		},
		"rocket_manual": {
			ID:              "rocket_manual",
			Label:           "Rocket (Send Money)",
			RequiresProof:   true,
			RecipientNumber: Config("ROCKET_RECIPIENT_NUMBER"),
			Currency:        "BDT",
		},
		"cod": {
			ID:       "cod",
			Label:    "Cash on Delivery",
			Currency: "BDT",
		},
		"sslcommerz": {
			ID:        "sslcommerz",
			Label:     "Card / Mobile Banking (SSLCommerz)",
			IsGateway: true,
			Currency:  "BDT",
		},
		"aamarpay": {
			ID:        "aamarpay",
			Label:     "Card / Mobile Banking (aamarPay)",
			IsGateway: true,
			Currency:  "BDT",
		},
		"uddoktapay": {
			ID:        "uddoktapay",
			Label:     "UddoktaPay",
			IsGateway: true,
			Currency:  "BDT",
		},
	}
}

// GetPaymentMethod returns the configured method for id, if any.
func GetPaymentMethod(id string) (PaymentMethod, bool) {
	if paymentMethods == nil {
		LoadPaymentMethods()
	}
	m, ok := paymentMethods[id]
	return m, ok
}

// ListPaymentMethods returns every configured method.
func ListPaymentMethods() []PaymentMethod {
	if paymentMethods == nil {
		LoadPaymentMethods()
	}
	methods := make([]PaymentMethod, 0, len(paymentMethods))
	for _, m := range paymentMethods {
		methods = append(methods, m)
	}
	return methods
}
