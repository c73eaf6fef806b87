package booking

import (
	"crypto/rand"
	"math/big"
)

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const referenceLength = 8

// NewReference synthesizes a short, human-shareable booking reference. The
// backend's booking id is authoritative when present; this token covers the
// confirmation display when it is not.
func NewReference() string {
	buf := make([]byte, referenceLength)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed character rather than panic.
			buf[i] = referenceAlphabet[0]
			continue
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf)
}
