package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// GenerateCode returns a random code of the given length whose characters
// are drawn uniformly from alphabet using the OS CSPRNG.
func GenerateCode(length int, alphabet string) (string, error) {
	symbols := []rune(alphabet)
	if length <= 0 || len(symbols) == 0 {
		return "", errors.New("code length and alphabet must be non-empty")
	}

	size := big.NewInt(int64(len(symbols)))
	code := make([]rune, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		code[i] = symbols[n.Int64()]
	}

	return string(code), nil
}
