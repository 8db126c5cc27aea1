package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"

	"donormatch/internal/platform/config"
	platformredis "donormatch/internal/platform/redis"
	"donormatch/internal/source"
	"donormatch/internal/source/postgres"
	redisbookings "donormatch/internal/source/redis"
	"donormatch/internal/source/sqlite"
)

var stderr io.Writer = os.Stderr

// runExport copies the live snapshot into a SQLite file for offline use.
func runExport(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(out)
	dbPath := fs.String("db", "donormatch.db", "SQLite file to write")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return errors.New("DONORMATCH_POSTGRES_URL is required for export")
	}
	log := cliLogger(*verbose)

	db, err := sql.Open("postgres", cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()
	pg := postgres.New(db, postgres.WithLogger(log))

	var bookings source.BookingSource
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		bookings = redisbookings.NewBookingStore(redisClient.Client,
			redisbookings.WithKey(cfg.Redis.BookingsKey),
			redisbookings.WithLogger(log),
		)
	}

	loader, err := source.NewLoader(pg, pg, bookings, source.WithLogger(log))
	if err != nil {
		return err
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Export(ctx, snap.Donors, snap.Requests); err != nil {
		return err
	}
	fmt.Fprintf(out, "exported %d donors and %d requests to %s\n", len(snap.Donors), len(snap.Requests), *dbPath)
	return nil
}
