package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-monitor-api/infrastructure/migration"
	"github.com/vfg2006/budget-monitor-api/internal/config"
	"github.com/vfg2006/budget-monitor-api/pkg/log"
)

func main() {
	log.Setup("info")

	dbConfig, err := config.NewDatabaseConfig()
	if err != nil {
		logrus.WithError(err).Fatal("migration: invalid database configuration")
	}

	db, err := sql.Open("postgres", dbConfig.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("migration: failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logrus.WithError(err).Fatal("migration: database unreachable")
	}

	startTime := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logrus.WithError(err).Fatal("migration: failed to begin transaction")
	}

	if err := migration.Apply(ctx, tx); err != nil {
		_ = tx.Rollback()
		logrus.WithError(err).Fatal("migration: schema not applied")
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Fatal("migration: failed to commit schema")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("migration: finished")
}
