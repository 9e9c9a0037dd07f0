// Package main implements the main entry point for a ROM reader for the
// Intel 4001 ROM driven by Raspberry Pi GPIO lines
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/read4001/internal/cli"
	"github.com/retroenv/read4001/internal/config"
	"github.com/retroenv/read4001/internal/reader"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			reader.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	reader.PrintBanner(logger, opts, version, commit, date)

	if err := reader.Run(ctx, logger, opts, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
		} else {
			logger.Error("Reading ROM failed", log.Err(err))
		}
		os.Exit(1)
	}
}
