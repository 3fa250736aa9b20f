package payments_test

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asifrahman99/course_bazaar/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuyer() payments.BuyerInfo {
	return payments.BuyerInfo{
		FullName:    "Test Buyer",
		Email:       "buyer@example.com",
		Phone:       "01712345678",
		Address:     "Dhaka",
		CourseTitle: "Golang Bootcamp",
	}
}

func TestCreateSSLCommerzSession_ReturnsGatewayURL(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gwprocess/v4/api.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		fmt.Fprint(w, `{"status":"SUCCESS","sessionkey":"sess1","GatewayPageURL":"https://gw.example.com/pay/sess1"}`)
	}))
	defer server.Close()

	t.Setenv("SSLCOMMERZ_STORE_ID", "teststore")
	t.Setenv("SSLCOMMERZ_STORE_PASSWD", "secret")
	t.Setenv("SSLCOMMERZ_BASE_URL", server.URL)
	t.Setenv("STOREFRONT_URL", "https://shop.example.com")
	t.Setenv("WEBHOOK_BASE_URL", "https://api.example.com")

	url, err := payments.CreateSSLCommerzSession(900, "BDT", "order-abc", testBuyer())

	require.NoError(t, err)
	assert.Equal(t, "https://gw.example.com/pay/sess1", url)
	assert.Equal(t, "order-abc", gotForm["tran_id"])
	assert.Equal(t, "order-abc", gotForm["value_a"])
	assert.Equal(t, "900.00", gotForm["total_amount"])
	assert.Equal(t, "BDT", gotForm["currency"])
	assert.Equal(t, "https://api.example.com/api/v1/payments/webhook/sslcommerz", gotForm["ipn_listener_url"])
}

func TestCreateSSLCommerzSession_FailedSessionSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"FAILED","failedreason":"store credentials invalid"}`)
	}))
	defer server.Close()

	t.Setenv("SSLCOMMERZ_STORE_ID", "teststore")
	t.Setenv("SSLCOMMERZ_STORE_PASSWD", "secret")
	t.Setenv("SSLCOMMERZ_BASE_URL", server.URL)
	t.Setenv("STOREFRONT_URL", "https://shop.example.com")
	t.Setenv("WEBHOOK_BASE_URL", "https://api.example.com")

	_, err := payments.CreateSSLCommerzSession(900, "BDT", "order-abc", testBuyer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credentials invalid")
}

func TestCreateSSLCommerzSession_MissingCredentials(t *testing.T) {
	t.Setenv("SSLCOMMERZ_STORE_ID", "")
	t.Setenv("SSLCOMMERZ_STORE_PASSWD", "")
	t.Setenv("SSLCOMMERZ_BASE_URL", "")

	_, err := payments.CreateSSLCommerzSession(900, "BDT", "order-abc", testBuyer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestVerifySSLCommerzSignature(t *testing.T) {
	storePasswd := "secret"
	passwdHash := md5.Sum([]byte(storePasswd))

	// Signed fields in sorted key order: amount, status, store_passwd.
	signedString := "amount=900.00&status=VALID&store_passwd=" + hex.EncodeToString(passwdHash[:])
	sign := md5.Sum([]byte(signedString))

	params := map[string]string{
		"amount":      "900.00",
		"status":      "VALID",
		"verify_key":  "amount,status",
		"verify_sign": hex.EncodeToString(sign[:]),
	}

	assert.True(t, payments.VerifySSLCommerzSignature(params, storePasswd))

	tampered := map[string]string{}
	for k, v := range params {
		tampered[k] = v
	}
	tampered["amount"] = "1.00"
	assert.False(t, payments.VerifySSLCommerzSignature(tampered, storePasswd))

	assert.False(t, payments.VerifySSLCommerzSignature(map[string]string{"amount": "900.00"}, storePasswd))
}
