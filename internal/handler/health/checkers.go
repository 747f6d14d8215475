package health

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
)

// DB adapts *sql.DB to Checker.
type DB struct{ DB *sql.DB }

func (d DB) Check(ctx context.Context) error { return d.DB.PingContext(ctx) }

// Redis adapts *redis.Client to Checker.
type Redis struct{ Client *redis.Client }

func (r Redis) Check(ctx context.Context) error { return r.Client.Ping(ctx).Err() }
