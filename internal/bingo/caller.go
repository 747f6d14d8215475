package bingo

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Caller draws a number for the active game on every tick.
type Caller struct {
	hall     *Hall
	interval time.Duration
	logger   *slog.Logger
}

func NewCaller(h *Hall, interval time.Duration, logger *slog.Logger) *Caller {
	return &Caller{hall: h, interval: interval, logger: logger}
}

// Run calls numbers until ctx is done. A non-positive interval disables
// the caller; Run then just waits for ctx.
func (c *Caller) Run(ctx context.Context) error {
	if c.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.call(ctx)
		}
	}
}

func (c *Caller) call(ctx context.Context) {
	res, err := c.hall.DrawActive(ctx)
	switch {
	case errors.Is(err, ErrNoActiveGame), errors.Is(err, ErrGameNotActive):
		// Nothing to call, or the game stopped between lookup and draw.
	case err != nil:
		c.logger.Error("auto draw failed", "error", err)
	case res.Exhausted:
		c.logger.Debug("auto draw skipped, all numbers drawn", "game_id", res.GameID)
	default:
		c.logger.Info("number called", "game_id", res.GameID, "number", res.Number, "drawn", res.Drawn)
	}
}
