package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"majlis-rsvp/internal/models"
)

const cardSize = 256

// GenerateCard renders a guest's lucky-draw code as a PNG QR image for
// printable draw cards handed out at the event.
func GenerateCard(guest models.Guest) ([]byte, error) {
	if guest.LuckyDrawCode == "" {
		return nil, fmt.Errorf("guest %d has no draw code", guest.ID)
	}
	return qrcode.Encode(guest.LuckyDrawCode, qrcode.Medium, cardSize)
}
