// cmd/migrate/main.go
package main

import (
	"context"
	"flag"
	"os"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/identity-service/internal/config"
	"github.com/baechuer/identity-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/identity-service/internal/logger"
)

func main() {
	logger.Init()

	timeout := flag.Duration("timeout", time.Minute, "overall migration timeout")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	os.Exit(run(command, os.Getenv("DB_ADDR"), *timeout))
}

func run(command, dsn string, timeout time.Duration) int {
	if dsn == "" {
		zlog.Error().Msg("DB_ADDR is required")
		return 2
	}

	db, err := config.NewDB(dsn, false)
	if err != nil {
		zlog.Error().Err(err).Msg("connect failed")
		return 1
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := postgres.Migrate(ctx, db, command); err != nil {
		zlog.Error().Err(err).Str("command", command).Msg("migration failed")
		return 1
	}

	zlog.Info().Str("command", command).Msg("migration finished")
	return 0
}
