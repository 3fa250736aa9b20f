package payments

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	config "github.com/asifrahman99/course_bazaar/configs"
)

type SSLCommerzSessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// CreateSSLCommerzSession opens a hosted checkout session and returns the
// URL the buyer's browser should be redirected to. The internal order id
// rides along as value_a so the IPN can find the order again.
func CreateSSLCommerzSession(amount float64, currency, orderID string, buyer BuyerInfo) (string, error) {
	storeID := config.Config("SSLCOMMERZ_STORE_ID")
	storePasswd := config.Config("SSLCOMMERZ_STORE_PASSWD")
	baseURL := config.Config("SSLCOMMERZ_BASE_URL")
	if storeID == "" || storePasswd == "" || baseURL == "" {
		return "", fmt.Errorf("SSLCommerz credentials are not configured")
	}

	storefrontURL := config.Config("STOREFRONT_URL")
	webhookBase := config.Config("WEBHOOK_BASE_URL")

	form := url.Values{}
	form.Set("store_id", storeID)
	form.Set("store_passwd", storePasswd)
	form.Set("total_amount", fmt.Sprintf("%.2f", amount))
	form.Set("currency", currency)
	form.Set("tran_id", orderID)
	form.Set("success_url", webhookBase+"/api/v1/payments/callback?order_id="+orderID)
	form.Set("fail_url", storefrontURL+"/checkout?payment=failed")
	form.Set("cancel_url", storefrontURL+"/checkout?payment=cancelled")
	form.Set("ipn_listener_url", webhookBase+"/api/v1/payments/webhook/sslcommerz")
	form.Set("shipping_method", "NO")
	form.Set("product_name", buyer.CourseTitle)
	form.Set("product_category", "E-Learning")
	form.Set("product_profile", "non-physical-goods")
	form.Set("cus_name", buyer.FullName)
	form.Set("cus_email", buyer.Email)
	form.Set("cus_phone", buyer.Phone)
	form.Set("cus_add1", buyer.Address)
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("value_a", orderID)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.PostForm(baseURL+"/gwprocess/v4/api.php", form)
	if err != nil {
		return "", fmt.Errorf("failed to reach SSLCommerz: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read SSLCommerz response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SSLCommerz returned non-200 status %d: %s", resp.StatusCode, string(respBody))
	}

	var session SSLCommerzSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal SSLCommerz response: %v", err)
	}

	if session.Status != "SUCCESS" || session.GatewayPageURL == "" {
		return "", fmt.Errorf("SSLCommerz session creation failed: %s", session.FailedReason)
	}

	return session.GatewayPageURL, nil
}

// VerifySSLCommerzSignature checks the verify_sign an IPN carries. The
// gateway signs the fields named in verify_key plus the md5 of the store
// password, in sorted key order.
func VerifySSLCommerzSignature(params map[string]string, storePasswd string) bool {
	verifySign := params["verify_sign"]
	verifyKey := params["verify_key"]
	if verifySign == "" || verifyKey == "" {
		return false
	}

	keys := strings.Split(verifyKey, ",")
	passwdHash := md5.Sum([]byte(storePasswd))
	keys = append(keys, "store_passwd")
	sort.Strings(keys)

	var pairs []string
	for _, k := range keys {
		if k == "store_passwd" {
			pairs = append(pairs, "store_passwd="+hex.EncodeToString(passwdHash[:]))
			continue
		}
		pairs = append(pairs, k+"="+params[k])
	}

	signed := md5.Sum([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(signed[:]) == strings.ToLower(verifySign)
}
