package server

import (
	"context"
	"log/slog"

	"github.com/playperu/bingohall/internal/bingo"
)

const demoGameName = "Demo"

// SeedDemo creates a finished demo game if no games exist.
// Idempotent: does nothing if games already exist.
func SeedDemo(ctx context.Context, logger *slog.Logger, hall *bingo.Hall) error {
	existing, err := hall.Games(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	g, err := hall.CreateGame(ctx, demoGameName)
	if err != nil {
		return err
	}

	logger.Info("demo game created", "game_id", g.ID)
	return nil
}
