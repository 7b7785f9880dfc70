package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/dataprovider"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "dpquery",
		Short: "Query record snapshots with filters, sorting and paging",
		Long: `dpquery loads records from snapshot blobs or databases into an in-memory
store and answers count and fetch queries against them.

Sources:
- local snapshot directories (--dir)
- S3 buckets (--s3-bucket)
- PostgreSQL (--pg-url with --sql)
- SQLite files (--sqlite with --sql)
- DynamoDB tables (--ddb-table)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newQueryCommand(g))
	root.AddCommand(newPackCommand(g))
	return root
}

func (g *globalFlags) logger(w io.Writer) (*dataprovider.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(g.logFormat) {
	case "json":
		return dataprovider.NewLogger(slog.NewJSONHandler(w, opts)), nil
	case "text", "console":
		return dataprovider.NewLogger(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", g.logFormat)
	}
}
