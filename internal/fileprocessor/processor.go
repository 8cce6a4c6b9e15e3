// Package fileprocessor handles file selection and per file processing
package fileprocessor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/options"
	"github.com/retroenv/romedit/internal/pipeline"
	"github.com/retroenv/romedit/internal/session"
	"github.com/spf13/afero"
)

// ProcessFile runs a complete editing session for the input file of opts
// and logs the resulting session state.
func ProcessFile(ctx context.Context, logger *log.Logger, fs afero.Fs, sess *session.Session, opts options.Program) error {
	p := pipeline.New(logger, fs)
	if err := p.Execute(ctx, sess, opts); err != nil {
		return err
	}

	if !opts.Quiet {
		PrintSummary(logger, opts.Input, sess.Snapshot())
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(fs afero.Fs, opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := afero.Glob(fs, opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// PrintSummary logs the state of a session.
func PrintSummary(logger *log.Logger, file string, state session.State) {
	logger.Info("Session",
		log.String("file", file),
		log.String("id", state.ID),
		log.Int("rom_size", len(state.Rom)),
		log.Stringer("position", state.Position),
		log.Int("table_entries", len(state.ByteToGlyph)))

	if state.SearchText != "" {
		logger.Info("Search",
			log.String("text", state.SearchText),
			log.Int("matches", len(state.SearchMatches)))
		if state.HasSelectedMatch {
			logger.Info("Selected match",
				log.Hex("offset", state.SelectedMatch.Offset),
				log.Int("length", state.SelectedMatch.Length))
		}
	}

	if state.Dump != (session.DumpConfig{}) {
		logger.Info("Dump",
			log.String("start", state.Dump.StartAddress),
			log.String("end", state.Dump.EndAddress),
			log.String("break_bytes", state.Dump.BreakBytes),
			log.String("strings", strconv.FormatBool(state.Dump.Strings)))
	}

	logger.Debug("Cross references",
		log.String("uncompressed_search", state.UncompressedSearchOffset),
		log.Hex("compressed", state.SelectedCompressedOffset),
		log.Hex("song", state.SelectedSongOffset))
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("romedit", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
