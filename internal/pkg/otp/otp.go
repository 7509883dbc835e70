package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated code. The front-end
// renders one input cell per digit.
const CodeLength = 6

var codeMax = big.NewInt(1000000)

// GenerateCode returns a cryptographically random numeric code of
// CodeLength digits, zero-padded on the left.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeMax)
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
