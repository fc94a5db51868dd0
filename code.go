package authgate

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
)

const (
	codeMin  = 100000
	codeMax  = 999999
	codeSpan = codeMax - codeMin + 1
)

// newCode draws a 6-digit decimal code uniformly from [100000, 999999].
// The range deliberately starts at 100000 so a code never carries a leading
// zero.
func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}

	code := strconv.FormatInt(codeMin+n.Int64(), 10)
	if len(code) != 6 {
		return "", errors.New("invalid code generation length")
	}
	return code, nil
}
