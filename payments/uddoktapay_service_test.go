package payments_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asifrahman99/course_bazaar/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUddoktaPaySession_ReturnsPaymentURL(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/checkout-v2", r.URL.Path)
		gotAPIKey = r.Header.Get("RT-UDDOKTAPAY-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"status":true,"payment_url":"https://pay.example.com/invoice/xyz"}`)
	}))
	defer server.Close()

	t.Setenv("UDDOKTAPAY_API_KEY", "api-key-1")
	t.Setenv("UDDOKTAPAY_BASE_URL", server.URL)
	t.Setenv("STOREFRONT_URL", "https://shop.example.com")
	t.Setenv("WEBHOOK_BASE_URL", "https://api.example.com")

	url, err := payments.CreateUddoktaPaySession(900, "order-abc", testBuyer())

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/invoice/xyz", url)
	assert.Equal(t, "api-key-1", gotAPIKey)
	assert.Equal(t, "900.00", gotBody["amount"])

	metadata, ok := gotBody["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "order-abc", metadata["order_id"])
}

func TestCreateUddoktaPaySession_GatewayErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":false,"message":"invalid api key"}`)
	}))
	defer server.Close()

	t.Setenv("UDDOKTAPAY_API_KEY", "api-key-1")
	t.Setenv("UDDOKTAPAY_BASE_URL", server.URL)
	t.Setenv("STOREFRONT_URL", "https://shop.example.com")
	t.Setenv("WEBHOOK_BASE_URL", "https://api.example.com")

	_, err := payments.CreateUddoktaPaySession(900, "order-abc", testBuyer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestVerifyUddoktaPayAPIKey(t *testing.T) {
	t.Setenv("UDDOKTAPAY_API_KEY", "api-key-1")

	assert.True(t, payments.VerifyUddoktaPayAPIKey("api-key-1"))
	assert.False(t, payments.VerifyUddoktaPayAPIKey("wrong-key"))
	assert.False(t, payments.VerifyUddoktaPayAPIKey(""))

	t.Setenv("UDDOKTAPAY_API_KEY", "")
	assert.False(t, payments.VerifyUddoktaPayAPIKey("api-key-1"))
}
