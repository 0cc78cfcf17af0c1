// Command migrate applies the embedded goose migrations.
//
//	migrate [up|down|status|redo|reset|version]
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/georgemunganga/autoservice-backend/internal/config"
	"github.com/georgemunganga/autoservice-backend/internal/logging"
	"github.com/georgemunganga/autoservice-backend/internal/platform/database"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, command); err != nil {
		logger.WithError(err).Fatal("migrate")
	}
	logger.WithField("command", command).Info("migrations done")
}
