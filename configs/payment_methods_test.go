package config_test

import (
	"testing"

	config "github.com/asifrahman99/course_bazaar/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaymentMethod(t *testing.T) {
	config.LoadPaymentMethods()

	bkash, ok := config.GetPaymentMethod("bkash_manual")
	require.True(t, ok)
	assert.True(t, bkash.RequiresProof)
	assert.False(t, bkash.IsGateway)

	cod, ok := config.GetPaymentMethod("cod")
	require.True(t, ok)
	assert.False(t, cod.RequiresProof)

	ssl, ok := config.GetPaymentMethod("sslcommerz")
	require.True(t, ok)
	assert.True(t, ssl.IsGateway)

	_, ok = config.GetPaymentMethod("paypal")
	assert.False(t, ok)
}

func TestListPaymentMethods(t *testing.T) {
	config.LoadPaymentMethods()
	methods := config.ListPaymentMethods()

	assert.Len(t, methods, 7)

	var gateways, manual int
	for _, m := range methods {
		if m.IsGateway {
			gateways++
		}
		if m.RequiresProof {
			manual++
		}
	}
	assert.Equal(t, 3, gateways)
	assert.Equal(t, 3, manual)
}
