package typing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestController_StartedThenStopped(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := NewController(DefaultExpiry, log)

	c.Started("2")
	req.True(c.IsTyping("2"))
	req.False(c.IsTyping("3"))

	c.Stopped("2")
	req.False(c.IsTyping("2"))
}

func TestController_ExpiresWithoutRenewal(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := NewController(30*time.Millisecond, log)

	c.Started("2")
	req.True(c.IsTyping("2"))

	req.Eventually(func() bool { return !c.IsTyping("2") },
		500*time.Millisecond, 10*time.Millisecond)
}

func TestController_RenewalRearmsTimer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := NewController(60*time.Millisecond, log)

	c.Started("2")
	time.Sleep(40 * time.Millisecond)
	c.Started("2")
	time.Sleep(40 * time.Millisecond)

	// 80ms after the first event but only 40ms after the renewal.
	req.True(c.IsTyping("2"))
}

func TestController_StopCancelsEverything(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	c := NewController(DefaultExpiry, log)

	c.Started("2")
	c.Started("3")
	c.Stop()

	req.False(c.IsTyping("2"))
	req.False(c.IsTyping("3"))
}
