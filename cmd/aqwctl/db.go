package main

import (
	"context"
	"errors"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("no database configured (set database.dsn)")

// openDatabase connects the pool and brings the schema up to date. The
// caller owns the returned handle and must Close it.
func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*persist.DB, error) {
	if cfg.Database.DSN == "" {
		return nil, errNoDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
