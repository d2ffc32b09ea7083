package scheduler

import (
    "context"
    "sync/atomic"
    "testing"
    "time"

    "github.com/sirupsen/logrus"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/config"
)

type countingSweeper struct {
    calls atomic.Int64
}

func (s *countingSweeper) ExpireLocks(context.Context) (int64, error) {
    s.calls.Add(1)
    return 0, nil
}

func TestStartSweepsAtInterval(t *testing.T) {
    log := logrus.New()
    log.SetLevel(logrus.PanicLevel)

    sweeper := &countingSweeper{}
    cfg := config.Config{LockSweepInterval: 20 * time.Millisecond}

    s, err := Start(cfg, sweeper, log)
    require.NoError(t, err)
    defer func() { _ = s.Shutdown() }()

    assert.Eventually(t, func() bool {
        return sweeper.calls.Load() >= 2
    }, 2*time.Second, 10*time.Millisecond, "sweep should run repeatedly")
}
