package plan

import (
	"crypto/rand"
	"fmt"
)

const tagAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewTag generates a fresh 4-character plan tag from a CSPRNG. Tags are
// assigned once per plan at creation time and never recomputed.
func NewTag() (string, error) {
	buf := make([]byte, TagLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("plan: failed to generate tag: %w", err)
	}
	out := make([]byte, TagLength)
	for i, b := range buf {
		out[i] = tagAlphabet[int(b)%len(tagAlphabet)]
	}
	return string(out), nil
}
