package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"TRUE", "true", " True ", "1", "YES", "yes"} {
		assert.True(t, IsTruthy(v), "expected %q to be truthy", v)
	}
	for _, v := range []string{"", "FALSE", "0", "no", "2", "on"} {
		assert.False(t, IsTruthy(v), "expected %q to be falsy", v)
	}
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "TRUE", FormatBool(true))
	assert.Equal(t, "FALSE", FormatBool(false))
}

func TestPhoneString(t *testing.T) {
	assert.Equal(t, "0812345678", PhoneString("0812345678.0"))
	assert.Equal(t, "0812345678", PhoneString(" 0812345678 "))
	assert.Equal(t, "", PhoneString(""))
}
