package domain

import "crypto/rand"

const (
	serialPrefix  = "SCH-"
	serialCodeLen = 8

	// 32 characters so the modulo below introduces no bias; ambiguous
	// glyphs (0/O, 1/I) are excluded because serials are read aloud.
	serialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewScheduleSerial returns a human-shareable booking reference such as
// "SCH-7KQ2M9XP". Global uniqueness is enforced by the store; callers
// regenerate on collision.
func NewScheduleSerial() (string, error) {
	b := make([]byte, serialCodeLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = serialAlphabet[int(b[i])%len(serialAlphabet)]
	}
	return serialPrefix + string(b), nil
}
