package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerPhoneOrEmpty(t *testing.T) {
	phone := "555-1234"
	withPhone := Customer{Name: "Alice", Email: "alice@x.com", Phone: &phone}
	assert.True(t, withPhone.HasPhone())
	assert.Equal(t, "555-1234", withPhone.PhoneOrEmpty())

	withoutPhone := Customer{Name: "Bob", Email: "bob@x.com"}
	assert.False(t, withoutPhone.HasPhone())
	assert.Equal(t, "", withoutPhone.PhoneOrEmpty())
}
