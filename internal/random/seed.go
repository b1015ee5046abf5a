// Package random provides seed generation and seeded dice rollers.
//
// Seeds come from crypto/rand. A seed drives a PCG generator, so the same
// seed and the same dice text always produce the same rolls.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed returns a non-negative seed drawn from crypto/rand.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("draw seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:]) >> 1), nil
}
