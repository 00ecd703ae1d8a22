// Command backup takes one snapshot of the database and uploads it,
// replacing the previous copy.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"nippo/config"
	"nippo/database"
	"nippo/pkg/backup"
	"nippo/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "optional YAML config file")
	flag.Parse()

	cfg := config.Load(*cfgPath)
	logger.Init(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.L.Fatal("db.open_failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close(db)

	runner, err := backup.FromConfig(ctx, db, cfg.Backup)
	if err != nil {
		logger.L.Fatal("backup.init_failed", zap.Error(err))
	}
	if err := runner.Run(ctx); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
