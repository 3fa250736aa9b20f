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

func TestCreateAamarPaySession_ReturnsPaymentURL(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jsonpost.php", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"result":"true","payment_url":"https://sandbox.aamarpay.com/pay/abc"}`)
	}))
	defer server.Close()

	t.Setenv("AAMARPAY_STORE_ID", "teststore")
	t.Setenv("AAMARPAY_SIGNATURE_KEY", "sigkey")
	t.Setenv("AAMARPAY_BASE_URL", server.URL)
	t.Setenv("STOREFRONT_URL", "https://shop.example.com")
	t.Setenv("WEBHOOK_BASE_URL", "https://api.example.com")

	url, err := payments.CreateAamarPaySession(900, "BDT", "order-abc", testBuyer())

	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.aamarpay.com/pay/abc", url)
	assert.Equal(t, "order-abc", gotBody["tran_id"])
	assert.Equal(t, "order-abc", gotBody["opt_a"])
	assert.Equal(t, "900.00", gotBody["amount"])
}

func TestVerifyAamarPayTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/trxcheck/request.php", r.URL.Path)
		require.Equal(t, "order-abc", r.URL.Query().Get("request_id"))
		fmt.Fprint(w, `{"pay_status":"Successful","amount_bdt":"900.00","pg_txnid":"PG123","opt_a":"order-abc"}`)
	}))
	defer server.Close()

	t.Setenv("AAMARPAY_STORE_ID", "teststore")
	t.Setenv("AAMARPAY_SIGNATURE_KEY", "sigkey")
	t.Setenv("AAMARPAY_BASE_URL", server.URL)

	status, err := payments.VerifyAamarPayTransaction("order-abc")

	require.NoError(t, err)
	assert.Equal(t, "Successful", status.PayStatus)
	assert.Equal(t, "900.00", status.AmountBDT)
	assert.Equal(t, "PG123", status.PgTxnID)
	assert.Equal(t, "order-abc", status.OptA)
}

func TestCreateAamarPaySession_MissingCredentials(t *testing.T) {
	t.Setenv("AAMARPAY_STORE_ID", "")
	t.Setenv("AAMARPAY_SIGNATURE_KEY", "")
	t.Setenv("AAMARPAY_BASE_URL", "")

	_, err := payments.CreateAamarPaySession(900, "BDT", "order-abc", testBuyer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
