package utils_test

import (
	"regexp"
	"testing"

	"majlis-rsvp/internal/utils"
)

func TestGenerateDrawCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	for i := 0; i < 100; i++ {
		code := utils.GenerateDrawCode()
		if !pattern.MatchString(code) {
			t.Fatalf("Code %q does not match the expected format", code)
		}
	}
}

func TestGenerateDrawCodeSpread(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		seen[utils.GenerateDrawCode()] = true
	}
	// With ~2.2 billion possible codes, 1000 draws colliding at all is
	// vanishingly unlikely.
	if len(seen) != 1000 {
		t.Errorf("Expected 1000 distinct codes, got %d", len(seen))
	}
}
