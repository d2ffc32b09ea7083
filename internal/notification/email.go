// Package notification delivers booking confirmations to users.
package notification

import (
    "fmt"
    "io"
    "strings"

    "github.com/sirupsen/logrus"
    gomail "gopkg.in/gomail.v2"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/queue"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/utils"
)

// EmailSender mails ticket confirmations over SMTP with the booking QR
// code attached.
type EmailSender struct {
    dialer *gomail.Dialer
    from   string
    log    *logrus.Logger
}

// NewEmailSender returns an EmailSender, or nil when host is empty so
// callers can treat mail as disabled.
func NewEmailSender(host string, port int, user, pass, from string, log *logrus.Logger) *EmailSender {
    if host == "" {
        return nil
    }
    return &EmailSender{
        dialer: gomail.NewDialer(host, port, user, pass),
        from:   from,
        log:    log,
    }
}

// SendBookingConfirmation mails the ticket for a confirmed booking.
// The QR code encodes the booking code and is attached as a PNG.
func (s *EmailSender) SendBookingConfirmation(ev queue.BookingConfirmedEvent) error {
    m := gomail.NewMessage()
    m.SetHeader("From", s.from)
    m.SetHeader("To", ev.UserEmail)
    m.SetHeader("Subject", fmt.Sprintf("Your tickets for %s (%s)", ev.MovieTitle, ev.BookingCode))
    m.SetBody("text/plain", confirmationBody(ev))

    if png, err := utils.TicketQR(ev.BookingCode, 256); err == nil {
        m.Attach("ticket.png", gomail.SetCopyFunc(func(w io.Writer) error {
            _, werr := w.Write(png)
            return werr
        }))
    } else {
        s.log.WithError(err).WithField("booking_code", ev.BookingCode).
            Warn("notification: qr render failed, mailing without attachment")
    }

    if err := s.dialer.DialAndSend(m); err != nil {
        return fmt.Errorf("send confirmation: %w", err)
    }
    s.log.WithFields(logrus.Fields{
        "booking_code": ev.BookingCode,
        "to":           ev.UserEmail,
    }).Info("notification: confirmation mail sent")
    return nil
}

func confirmationBody(ev queue.BookingConfirmedEvent) string {
    var b strings.Builder
    fmt.Fprintf(&b, "Hi %s,\n\n", ev.UserName)
    fmt.Fprintf(&b, "Your booking %s is confirmed.\n\n", ev.BookingCode)
    fmt.Fprintf(&b, "Movie:  %s\n", ev.MovieTitle)
    fmt.Fprintf(&b, "Venue:  %s, %s (%s)\n", ev.VenueName, ev.VenueCity, ev.ScreenName)
    fmt.Fprintf(&b, "When:   %s %s\n", ev.ShowDate, ev.ShowTime)
    fmt.Fprintf(&b, "Seats:  %s\n", strings.Join(ev.SeatLabels, ", "))
    fmt.Fprintf(&b, "Paid:   %.2f\n\n", float64(ev.TotalAmountCents)/100)
    b.WriteString("Show the attached QR code at the entrance.\n")
    return b.String()
}
