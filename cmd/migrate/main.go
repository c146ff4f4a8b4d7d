package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

func main() {
	_ = godotenv.Load()

	var dbURLFlag string
	flag.StringVar(&dbURLFlag, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string (defaults to DATABASE_URL)")
	flag.Parse()

	dbURL := strings.TrimSpace(dbURLFlag)
	if dbURL == "" {
		exitWithError(errors.New("-database-url or DATABASE_URL is required"))
	}

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}
	if _, err := db.ExecContext(ctx, sqlinline.QPGSchema); err != nil {
		exitWithError(fmt.Errorf("apply schema: %w", err))
	}
	logger.Info().Msg("ledger schema applied")
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
	os.Exit(1)
}
