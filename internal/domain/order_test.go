package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, ValidOrderStatus(status), "%q should be valid", status)
	}

	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus("Delivered"), "statuses are case sensitive")
	assert.False(t, ValidOrderStatus(""))
}

func TestNewOrderCode(t *testing.T) {
	code := NewOrderCode()
	assert.True(t, strings.HasPrefix(code, "ORD-"))
	assert.NotEqual(t, code, NewOrderCode())
}
