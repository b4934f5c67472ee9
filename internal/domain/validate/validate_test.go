package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_CollectsEveryField(t *testing.T) {
	var errs Errors
	errs.Require("name", "")
	errs.Require("email", "   ")
	errs.Require("phone", "555-1234")
	errs.Add("date", "cannot be in the past")

	err := errs.ErrOrNil()
	require.Error(t, err)
	require.Len(t, errs, 3)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Message)
	assert.Contains(t, err.Error(), "date: cannot be in the past")
}

func TestErrors_NilWhenEmpty(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.ErrOrNil())
}

func TestEmail(t *testing.T) {
	for _, v := range []string{"maria@example.com", "a@b.co", "first.last@sub.domain.org"} {
		assert.True(t, Email(v), v)
	}
	for _, v := range []string{"", "plain", "no@tld", "two@@example.com", "spaces in@example.com"} {
		assert.False(t, Email(v), v)
	}
}

func TestPhone(t *testing.T) {
	for _, v := range []string{"5551234", "555-123-4567", "+1 (555) 123-4567", "555.123.4567"} {
		assert.True(t, Phone(v), v)
	}
	for _, v := range []string{"", "123", "call me maybe", "555-123x4567"} {
		assert.False(t, Phone(v), v)
	}
}
