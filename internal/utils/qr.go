package utils

import (
    "github.com/skip2/go-qrcode"
)

// TicketQR renders a booking code as a PNG QR image.  The code is the
// only payload; scanners look the booking up by code at the gate.
func TicketQR(bookingCode string, size int) ([]byte, error) {
    return qrcode.Encode(bookingCode, qrcode.Medium, size)
}
