package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

var otpRange = big.NewInt(900000)

// GenerateOTP returns a 6-digit code drawn uniformly from [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// MatchOTP compares a submitted code against the stored one, exact after
// trimming surrounding whitespace.
func MatchOTP(stored string, submitted string) bool {
	return stored == strings.TrimSpace(submitted)
}
