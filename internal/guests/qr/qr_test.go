package qr_test

import (
	"bytes"
	"testing"

	"majlis-rsvp/internal/guests/qr"
	"majlis-rsvp/internal/models"
)

func TestGenerateCard(t *testing.T) {
	guest := models.Guest{
		ID:            1,
		Name:          "Ali bin Abu",
		LuckyDrawCode: "7KQ2ZD",
	}

	png, err := qr.GenerateCard(guest)
	if err != nil {
		t.Fatalf("Failed to generate QR card: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("Generated QR card is empty")
	}
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("Generated card is not a PNG image")
	}
}

func TestGenerateCardRequiresCode(t *testing.T) {
	if _, err := qr.GenerateCard(models.Guest{ID: 2, Name: "Siti"}); err == nil {
		t.Error("Expected an error for a guest without a draw code")
	}
}
