// Package verification generates the one-time codes mailed to users during
// registration and password reset. A code has no expiry: it stays valid until
// it is consumed or replaced by a newer request.
package verification

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

// NumericCode returns a 6-digit code, uniform over 100000-999999.
func NumericCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return strconv.FormatInt(100000+n.Int64(), 10)
}

// HexToken returns a random hex string of 2*n characters, for flows that want
// a longer token than a numeric code.
func HexToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
