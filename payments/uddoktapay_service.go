package payments

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/asifrahman99/course_bazaar/configs"
)

type uddoktaPayRequest struct {
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Amount      string            `json:"amount"`
	Metadata    map[string]string `json:"metadata"`
	RedirectURL string            `json:"redirect_url"`
	CancelURL   string            `json:"cancel_url"`
	WebhookURL  string            `json:"webhook_url"`
}

type UddoktaPaySessionResponse struct {
	Status     bool   `json:"status"`
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url"`
}

// UddoktaPayWebhookPayload is what the gateway posts once the buyer pays.
type UddoktaPayWebhookPayload struct {
	InvoiceID     string            `json:"invoice_id"`
	Amount        string            `json:"amount"`
	Status        string            `json:"status"`
	TransactionID string            `json:"transaction_id"`
	Metadata      map[string]string `json:"metadata"`
}

func CreateUddoktaPaySession(amount float64, orderID string, buyer BuyerInfo) (string, error) {
	apiKey := config.Config("UDDOKTAPAY_API_KEY")
	baseURL := config.Config("UDDOKTAPAY_BASE_URL")
	if apiKey == "" || baseURL == "" {
		return "", fmt.Errorf("UddoktaPay credentials are not configured")
	}

	storefrontURL := config.Config("STOREFRONT_URL")
	webhookBase := config.Config("WEBHOOK_BASE_URL")

	payload := uddoktaPayRequest{
		FullName:    buyer.FullName,
		Email:       buyer.Email,
		Amount:      fmt.Sprintf("%.2f", amount),
		Metadata:    map[string]string{"order_id": orderID},
		RedirectURL: webhookBase + "/api/v1/payments/callback?order_id=" + orderID,
		CancelURL:   storefrontURL + "/checkout?payment=cancelled",
		WebhookURL:  webhookBase + "/api/v1/payments/webhook/uddoktapay",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal UddoktaPay payload: %v", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/api/checkout-v2", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create UddoktaPay request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("RT-UDDOKTAPAY-API-KEY", apiKey)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach UddoktaPay: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read UddoktaPay response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("UddoktaPay returned non-200 status %d: %s", resp.StatusCode, string(respBody))
	}

	var session UddoktaPaySessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal UddoktaPay response: %v", err)
	}

	if !session.Status || session.PaymentURL == "" {
		return "", fmt.Errorf("UddoktaPay session creation failed: %s", session.Message)
	}

	return session.PaymentURL, nil
}

// VerifyUddoktaPayAPIKey authenticates a webhook by the API key header
// the gateway echoes back.
func VerifyUddoktaPayAPIKey(headerKey string) bool {
	apiKey := config.Config("UDDOKTAPAY_API_KEY")
	if apiKey == "" || headerKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(headerKey)) == 1
}
