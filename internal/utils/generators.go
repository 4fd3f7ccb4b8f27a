package utils

import (
	"crypto/rand"
	"math/big"
)

const drawCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DrawCodeLength is the length of generated lucky-draw codes. Six base36
// characters give ~2.2 billion combinations; a collision across one event's
// guest list is negligible and is additionally rejected by the unique
// constraint on the column.
const DrawCodeLength = 6

// GenerateDrawCode returns a short uppercase alphanumeric code such as
// "7KQ2ZD", issued to a guest exactly once at RSVP time.
func GenerateDrawCode() string {
	code := make([]byte, DrawCodeLength)
	max := big.NewInt(int64(len(drawCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// degrade to a fixed character rather than abort the RSVP.
			code[i] = drawCodeAlphabet[0]
			continue
		}
		code[i] = drawCodeAlphabet[n.Int64()]
	}
	return string(code)
}
