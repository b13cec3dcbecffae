package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// ConfirmationCodeLength is the number of digits in a confirmation code.
const ConfirmationCodeLength = 5

var digits = []byte("0123456789")

// GenerateConfirmationCode returns a fixed-width numeric code with each digit
// drawn independently, so leading zeros are as likely as anything else.
func GenerateConfirmationCode() (string, error) {
	b := make([]byte, ConfirmationCodeLength)
	max := big.NewInt(int64(len(digits)))
	for i := range b {
		val, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate confirmation code digit: %w", err)
		}
		b[i] = digits[val.Int64()]
	}
	return string(b), nil
}

// CodesEqual compares a submitted code to the stored one in constant time.
// Behavior is plain string equality; the constant-time walk is hardening.
func CodesEqual(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
