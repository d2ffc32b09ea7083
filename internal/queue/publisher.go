package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
)

const bookingQueueName = "booking.confirmed"

// Publisher emits BookingConfirmedEvents to the booking.confirmed
// queue.  It satisfies the booking service's notifier port; publishing
// is best effort and failures are logged, never surfaced to the
// booking flow.
type Publisher struct {
    url    string
    movies *repository.MovieRepo
    venues *repository.VenueRepo
    users  *repository.UserRepo
    log    *logrus.Logger
}

// NewPublisher returns a Publisher.  An empty url disables publishing.
func NewPublisher(url string, movies *repository.MovieRepo, venues *repository.VenueRepo, users *repository.UserRepo, log *logrus.Logger) *Publisher {
    return &Publisher{url: url, movies: movies, venues: venues, users: users, log: log}
}

// BookingConfirmed enriches the booking with catalog and user details
// and publishes the event.  Messages are persistent so they survive
// broker restarts.
func (p *Publisher) BookingConfirmed(ctx context.Context, b *model.Booking) {
    if p.url == "" {
        return
    }
    ev := p.buildEvent(ctx, b)

    conn, err := amqp.Dial(p.url)
    if err != nil {
        p.log.WithError(err).Error("queue: dial failed")
        return
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.log.WithError(err).Error("queue: channel open failed")
        return
    }
    defer func() { _ = ch.Close() }()

    // Idempotent declare; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
        p.log.WithError(err).Error("queue: queue declare failed")
        return
    }

    body, err := json.Marshal(ev)
    if err != nil {
        p.log.WithError(err).Error("queue: marshal event failed")
        return
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", bookingQueueName, false, false, pub); err != nil {
        p.log.WithError(err).Error("queue: publish failed")
        return
    }
    p.log.WithFields(logrus.Fields{
        "booking_id":   b.ID,
        "booking_code": b.Code,
    }).Info("queue: booking confirmed event published")
}

// buildEvent fills in names the booking record does not carry.  Lookup
// failures degrade to IDs only; the event is still worth publishing.
func (p *Publisher) buildEvent(ctx context.Context, b *model.Booking) BookingConfirmedEvent {
    ev := BookingConfirmedEvent{
        BookingID:        b.ID,
        BookingCode:      b.Code,
        UserID:           b.UserID,
        ShowID:           b.ShowID,
        ScreenName:       b.ScreenName,
        ShowDate:         b.ShowDate.Format("2006-01-02"),
        ShowTime:         b.ShowTime,
        TotalAmountCents: b.TotalAmountCents,
        ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    for _, s := range b.Seats {
        ev.SeatLabels = append(ev.SeatLabels, s.Label())
    }
    if p.movies != nil {
        if m, err := p.movies.GetByID(ctx, b.MovieID); err == nil {
            ev.MovieTitle = m.Title
        }
    }
    if p.venues != nil {
        if v, err := p.venues.GetByID(ctx, b.VenueID); err == nil {
            ev.VenueName = v.Name
            ev.VenueCity = v.City
        }
    }
    if p.users != nil {
        if u, err := p.users.GetByID(ctx, b.UserID); err == nil {
            ev.UserName = u.Name
            ev.UserEmail = u.Email
        }
    }
    return ev
}
