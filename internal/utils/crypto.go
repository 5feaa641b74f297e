// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateLedgerAddress derives a fresh 40-hex-character ledger identity.
// Addresses are unique per account and never reused.
func GenerateLedgerAddress() (string, error) {
	seed, err := GenerateRandomString(32)
	if err != nil {
		return "", err
	}

	hasher := sha256.New()
	hasher.Write([]byte(seed))
	return "0x" + hex.EncodeToString(hasher.Sum(nil))[:40], nil
}

func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}
