package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	referralCodePrefix = "REF"
	referralCodeSpace  = 1_000_000 // six digit suffix
	referralCodeTries  = 8
)

// ReferralCodeGenerator returns a candidate code; uniqueness is enforced by storage.
type ReferralCodeGenerator func() (string, error)

// NewReferralCode draws a REF###### code from crypto/rand.
func NewReferralCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(referralCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", referralCodePrefix, n.Int64()), nil
}
