package main

import (
	"github.com/persx/persx-sub000/internal/app"
	"github.com/persx/persx-sub000/internal/data/db"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

func openDB(log *logger.Logger, cfg app.Config) (*db.Service, error) {
	return db.NewService(log, db.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		SlowQuery:    cfg.Database.SlowQuery,
	})
}
