package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasTarget(t *testing.T) {
	s := Settlement{TargetUserIDs: []uint{1, 3, 5}}

	assert.True(t, s.HasTarget(1))
	assert.True(t, s.HasTarget(5))
	assert.False(t, s.HasTarget(2))
	assert.False(t, s.HasTarget(0))

	empty := Settlement{}
	assert.False(t, empty.HasTarget(1))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodBank))
	assert.True(t, ValidPaymentMethod(PaymentMethodPayPay))
	assert.False(t, ValidPaymentMethod("CASH"))
	assert.False(t, ValidPaymentMethod(""))
}
