package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPMessage(t *testing.T) {
	subject, body := OTPMessage("Jane Doe", "483920", 10)

	assert.Equal(t, "Your OTP Code", subject)
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, ">483920<")
	assert.Contains(t, body, "10 minutes")
}

func TestResetMessage(t *testing.T) {
	subject, body := ResetMessage("signed.reset.token", 60)

	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, body, "signed.reset.token")
	assert.Contains(t, body, "60 minutes")
	assert.False(t, strings.Contains(body, "%!"), "template should have no formatting errors")
}
