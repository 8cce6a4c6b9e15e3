// Package pipeline orchestrates the stages of an editing session run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/detector"
	"github.com/retroenv/romedit/internal/dump"
	"github.com/retroenv/romedit/internal/loader"
	"github.com/retroenv/romedit/internal/options"
	"github.com/retroenv/romedit/internal/search"
	"github.com/retroenv/romedit/internal/session"
	"github.com/retroenv/romedit/internal/verification"
	"github.com/spf13/afero"
)

// Pipeline wires the collaborators of a session together.
type Pipeline struct {
	logger   *log.Logger
	fs       afero.Fs
	detector *detector.Detector
	loader   *loader.Loader
	search   *search.Engine
	exporter *dump.Exporter
}

// New creates a new pipeline working on the given file system.
func New(logger *log.Logger, fs afero.Fs) *Pipeline {
	return &Pipeline{
		logger:   logger,
		fs:       fs,
		detector: detector.New(logger),
		loader:   loader.New(logger, fs),
		search:   search.New(logger),
		exporter: dump.New(logger, fs),
	}
}

// Execute resets the session, loads the ROM and table of opts into it and
// applies the requested cursor, cross reference, search and dump actions.
func (p *Pipeline) Execute(ctx context.Context, sess *session.Session, opts options.Program) error {
	sess.Reset()

	format := p.detector.Detect(opts)
	data, err := p.loader.LoadROM(opts.Input, format)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	sess.SetRom(data)

	if opts.Table != "" {
		if err := p.loadTable(sess, opts.Table); err != nil {
			return err
		}
	}

	if err := p.applySessionFlags(sess, opts.SessionFlags); err != nil {
		return err
	}

	if opts.Search != "" {
		if err := p.runSearch(ctx, sess, opts.SessionFlags); err != nil {
			return err
		}
	}

	if opts.Output != "" {
		if err := p.exportDump(ctx, sess, opts); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) loadTable(sess *session.Session, path string) error {
	pairs, err := p.loader.LoadTable(path)
	if err != nil {
		return fmt.Errorf("loading table: %w", err)
	}
	sess.AddTranslationPairs(pairs)

	for _, pair := range sess.Table().Violations() {
		p.logger.Warn("Translation table entry is not bijective",
			log.String("glyph", pair.Glyph),
			log.Hex("byte", pair.Byte))
	}
	return nil
}

func (p *Pipeline) applySessionFlags(sess *session.Session, flags options.SessionFlags) error {
	if flags.Position != "" {
		sess.SetHexPosition(flags.Position)
		pos := sess.HexPosition()
		switch {
		case pos.IsNaN():
			p.logger.Warn("Cursor position is not a hex number", log.String("position", flags.Position))
		case int64(pos) >= int64(sess.RomSize()):
			p.logger.Warn("Cursor position is beyond the ROM size", log.Stringer("position", pos))
		}
	}

	if flags.Compressed != "" {
		offset, err := dump.ParseAddress(flags.Compressed)
		if err != nil {
			return fmt.Errorf("parsing compressed offset: %w", err)
		}
		sess.SetSelectedCompressedOffset(offset)
	}
	if flags.Song != "" {
		offset, err := dump.ParseAddress(flags.Song)
		if err != nil {
			return fmt.Errorf("parsing song offset: %w", err)
		}
		sess.SetSelectedSongOffset(offset)
	}
	if flags.Uncompressed != "" {
		sess.SetUncompressedSearchOffset(flags.Uncompressed)
	}
	return nil
}

func (p *Pipeline) runSearch(ctx context.Context, sess *session.Session, flags options.SessionFlags) error {
	query := search.Query{
		Text: flags.Search,
		Hex:  flags.HexSearch,
	}
	if _, err := p.search.Run(ctx, sess, query); err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if flags.Select != 0 {
		if err := sess.SelectMatch(flags.Select); err != nil {
			return fmt.Errorf("selecting match %d: %w", flags.Select, err)
		}
	}
	return nil
}

func (p *Pipeline) exportDump(ctx context.Context, sess *session.Session, opts options.Program) error {
	start, end := opts.Start, opts.End
	if start == "" {
		start = "0"
	}
	if end == "" {
		end = fmt.Sprintf("%X", max(sess.RomSize()-1, 0))
	}

	sess.SetDumpInfo(session.DumpConfig{
		StartAddress: start,
		EndAddress:   end,
		BreakBytes:   opts.BreakBytes,
		Strings:      opts.Strings,
	})

	result, err := p.exporter.Export(ctx, sess, opts.Output)
	if err != nil {
		return fmt.Errorf("exporting dump: %w", err)
	}

	if opts.Verify {
		expected := sess.Rom()[result.Start : result.Start+uint64(result.Written)]
		if err := verification.VerifyDump(p.logger, p.fs, opts.Output, expected); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}
	return nil
}
