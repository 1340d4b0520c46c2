package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewTransactionReference builds the simulated gateway reference stored on
// each payment, e.g. sim_1735689600000_9f2c41d8a7.
func NewTransactionReference() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// Extremely unlikely; fall back to the clock alone.
		return fmt.Sprintf("sim_%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("sim_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
