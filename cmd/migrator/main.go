package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/logger"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing the SQL migrations")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.App.Name, cfg.App.Version, cfg.App.Env, cfg.App.LogLevel))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolOptions{MaxConns: 1})
	if err != nil {
		slog.Error("Failed to connect to DB", logger.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set migration dialect", logger.Err(err))
		os.Exit(1)
	}

	if err := goose.Run(command, sqlDB, *dir, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		slog.Error("Migration failed", "command", command, logger.Err(err))
		os.Exit(1)
	}

	slog.Info("Migrations applied", "command", command, "dir", *dir)
}
