// Package main implements the main entry point for the ROM editing session tool
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/cli"
	"github.com/retroenv/romedit/internal/config"
	"github.com/retroenv/romedit/internal/fileprocessor"
	"github.com/retroenv/romedit/internal/session"
	"github.com/spf13/afero"
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
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	fs := afero.NewOsFs()
	files, err := fileprocessor.GetFilesToProcess(fs, &opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	sess := session.New(config.SessionOptions(opts))
	failed := false
	for _, file := range files {
		opts.Input = file

		if err := fileprocessor.ProcessFile(ctx, logger, fs, sess, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Processing failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
