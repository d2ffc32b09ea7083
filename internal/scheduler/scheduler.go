// Package scheduler runs the periodic sweep that deactivates expired
// seat locks.  The sweep is a hygiene job: availability reads already
// treat expired locks as dead, sweeping just keeps the active set small.
package scheduler

import (
    "context"

    "github.com/go-co-op/gocron/v2"
    "github.com/sirupsen/logrus"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/config"
)

// LockSweeper is the slice of the booking service the sweep needs.
type LockSweeper interface {
    ExpireLocks(ctx context.Context) (int64, error)
}

// Start creates and starts a scheduler that sweeps expired locks at the
// configured interval.  The caller owns shutdown.
func Start(cfg config.Config, svc LockSweeper, log *logrus.Logger) (gocron.Scheduler, error) {
    s, err := gocron.NewScheduler()
    if err != nil {
        return nil, err
    }
    _, err = s.NewJob(
        gocron.DurationJob(cfg.LockSweepInterval),
        gocron.NewTask(func() {
            if _, err := svc.ExpireLocks(context.Background()); err != nil {
                log.WithError(err).Error("lock sweep failed")
            }
        }),
    )
    if err != nil {
        _ = s.Shutdown()
        return nil, err
    }
    s.Start()
    log.WithField("interval", cfg.LockSweepInterval.String()).Info("lock sweep scheduled")
    return s, nil
}
