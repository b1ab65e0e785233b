package database

import (
	"context"

	"github.com/DedS3t/richman-engine/platform/config"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/go-pg/pg/v10"
)

func PostgreSQLConnection(cfg config.Database) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     cfg.User,
		Addr:     cfg.Addr,
		Password: cfg.Password,
		Database: cfg.Name,
	})
}

// Ping fails fast when the directory database is unreachable at startup.
func Ping(db *pg.DB) error {
	if err := db.Ping(context.Background()); err != nil {
		logging.Component("database").WithError(err).Error("postgres unreachable")
		return err
	}
	return nil
}
