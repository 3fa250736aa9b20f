package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	config "github.com/asifrahman99/course_bazaar/configs"
)

type aamarPayRequest struct {
	StoreID      string `json:"store_id"`
	SignatureKey string `json:"signature_key"`
	TranID       string `json:"tran_id"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Desc         string `json:"desc"`
	CusName      string `json:"cus_name"`
	CusEmail     string `json:"cus_email"`
	CusPhone     string `json:"cus_phone"`
	SuccessURL   string `json:"success_url"`
	FailURL      string `json:"fail_url"`
	CancelURL    string `json:"cancel_url"`
	Type         string `json:"type"`
	OptA         string `json:"opt_a"`
}

type AamarPaySessionResponse struct {
	Result     string `json:"result"`
	PaymentURL string `json:"payment_url"`
}

// AamarPayTxnStatus is the server-to-server verification record for a
// transaction, fetched before trusting an IPN.
type AamarPayTxnStatus struct {
	PayStatus string  `json:"pay_status"`
	AmountBDT string  `json:"amount_bdt"`
	Amount    float64 `json:"amount,string"`
	PgTxnID   string  `json:"pg_txnid"`
	OptA      string  `json:"opt_a"`
}

func CreateAamarPaySession(amount float64, currency, orderID string, buyer BuyerInfo) (string, error) {
	storeID := config.Config("AAMARPAY_STORE_ID")
	signatureKey := config.Config("AAMARPAY_SIGNATURE_KEY")
	baseURL := config.Config("AAMARPAY_BASE_URL")
	if storeID == "" || signatureKey == "" || baseURL == "" {
		return "", fmt.Errorf("aamarPay credentials are not configured")
	}

	storefrontURL := config.Config("STOREFRONT_URL")
	webhookBase := config.Config("WEBHOOK_BASE_URL")

	payload := aamarPayRequest{
		StoreID:      storeID,
		SignatureKey: signatureKey,
		TranID:       orderID,
		Amount:       fmt.Sprintf("%.2f", amount),
		Currency:     currency,
		Desc:         buyer.CourseTitle,
		CusName:      buyer.FullName,
		CusEmail:     buyer.Email,
		CusPhone:     buyer.Phone,
		SuccessURL:   webhookBase + "/api/v1/payments/webhook/aamarpay",
		FailURL:      storefrontURL + "/checkout?payment=failed",
		CancelURL:    storefrontURL + "/checkout?payment=cancelled",
		Type:         "json",
		OptA:         orderID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal aamarPay payload: %v", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/jsonpost.php", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create aamarPay request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach aamarPay: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read aamarPay response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("aamarPay returned non-200 status %d: %s", resp.StatusCode, string(respBody))
	}

	var session AamarPaySessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal aamarPay response: %v", err)
	}

	if session.Result != "true" || session.PaymentURL == "" {
		return "", fmt.Errorf("aamarPay session creation failed: %s", string(respBody))
	}

	return session.PaymentURL, nil
}

// VerifyAamarPayTransaction cross-checks an IPN against aamarPay's
// transaction-search API instead of trusting the posted fields.
func VerifyAamarPayTransaction(merTxnID string) (*AamarPayTxnStatus, error) {
	storeID := config.Config("AAMARPAY_STORE_ID")
	signatureKey := config.Config("AAMARPAY_SIGNATURE_KEY")
	baseURL := config.Config("AAMARPAY_BASE_URL")
	if storeID == "" || signatureKey == "" || baseURL == "" {
		return nil, fmt.Errorf("aamarPay credentials are not configured")
	}

	query := url.Values{}
	query.Set("request_id", merTxnID)
	query.Set("store_id", storeID)
	query.Set("signature_key", signatureKey)
	query.Set("type", "json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/trxcheck/request.php?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to reach aamarPay verification API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read aamarPay verification response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aamarPay verification returned non-200 status %d: %s", resp.StatusCode, string(respBody))
	}

	var status AamarPayTxnStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal aamarPay verification response: %v", err)
	}

	return &status, nil
}
