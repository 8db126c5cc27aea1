// Command shortagectl computes a shortage report from an offline SQLite
// export, or writes such an export from the live Postgres and Redis sources.
//
//	shortagectl shortages -db export.db [-threshold 5] [-overrides O-=8] [-level district] [-as-of 2024-03-01] [-json]
//	shortagectl export -db export.db
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "shortagectl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		return runShortages(ctx, out, nil)
	}
	switch args[0] {
	case "shortages":
		return runShortages(ctx, out, args[1:])
	case "export":
		return runExport(ctx, out, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(out, "usage: shortagectl [shortages|export] [flags]")
		return nil
	default:
		return runShortages(ctx, out, args)
	}
}
