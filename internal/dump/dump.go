// Package dump exports a slice of the ROM buffer as configured in the session.
package dump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/romedit/internal/search"
	"github.com/retroenv/romedit/internal/session"
	"github.com/retroenv/romedit/internal/table"
	"github.com/spf13/afero"
)

// segmentCheckInterval is the number of string segments written between
// cancellation checks.
const segmentCheckInterval = 1024

var (
	// ErrInvalidRange is returned when the start address is after the end address.
	ErrInvalidRange = errors.New("start address is after end address")
	// ErrOutOfBounds is returned when the end address is beyond the ROM buffer.
	ErrOutOfBounds = errors.New("end address is beyond the ROM size")
)

// Result describes a finished export.
type Result struct {
	Start    uint64 // first exported offset
	End      uint64 // last offset of the configured range
	Written  int    // bytes written to the output file
	Segments int    // number of exported segments
}

// Exporter writes dumps of the session ROM buffer to a file system.
type Exporter struct {
	logger *log.Logger
	fs     afero.Fs
}

// New creates a new dump exporter.
func New(logger *log.Logger, fs afero.Fs) *Exporter {
	return &Exporter{
		logger: logger,
		fs:     fs,
	}
}

// Export writes the range of the session dump configuration to path.
// In raw mode the bytes up to the first break byte are written unchanged.
// In strings mode the range is split at every break byte and each segment
// is written as a line of decoded text prefixed by its offset.
func (e *Exporter) Export(ctx context.Context, sess *session.Session, path string) (Result, error) {
	cfg := sess.DumpInfo()
	rom := sess.Rom()

	start, end, err := Range(cfg, len(rom))
	if err != nil {
		return Result{}, err
	}

	breaks, err := search.ParseHexBytes(cfg.BreakBytes)
	if err != nil && !errors.Is(err, search.ErrEmptyPattern) {
		return Result{}, fmt.Errorf("parsing break bytes: %w", err)
	}
	breakSet := set.New[byte]()
	for _, b := range breaks {
		breakSet.Add(b)
	}

	data := rom[start : end+1]
	result := Result{
		Start: start,
		End:   end,
	}

	if cfg.Strings {
		result.Written, result.Segments, err = e.writeStrings(ctx, path, start, data, breakSet, sess.Table())
	} else {
		result.Written, err = e.writeRaw(path, data, breakSet)
		result.Segments = 1
	}
	if err != nil {
		return Result{}, err
	}

	e.logger.Info("Dump exported",
		log.String("file", path),
		log.Hex("start", start),
		log.Hex("end", end),
		log.Int("bytes", result.Written),
		log.Int("segments", result.Segments))
	return result, nil
}

// Range returns the validated, inclusive offset range of the dump
// configuration for a ROM of romSize bytes.
func Range(cfg session.DumpConfig, romSize int) (uint64, uint64, error) {
	start, err := ParseAddress(cfg.StartAddress)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing start address: %w", err)
	}
	end, err := ParseAddress(cfg.EndAddress)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing end address: %w", err)
	}

	if start > end {
		return 0, 0, fmt.Errorf("%w: %X > %X", ErrInvalidRange, start, end)
	}
	if end >= uint64(romSize) {
		return 0, 0, fmt.Errorf("%w: %X >= %X", ErrOutOfBounds, end, romSize)
	}
	return start, end, nil
}

// ParseAddress parses a hex address with an optional 0x prefix.
func ParseAddress(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, errors.New("empty address")
	}
	value, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex address '%s': %w", s, err)
	}
	return value, nil
}

func (e *Exporter) writeRaw(path string, data []byte, breakSet set.Set[byte]) (int, error) {
	for i, b := range data {
		if breakSet.Contains(b) {
			data = data[:i]
			break
		}
	}

	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing dump file '%s': %w", path, err)
	}
	return len(data), nil
}

func (e *Exporter) writeStrings(ctx context.Context, path string, start uint64, data []byte,
	breakSet set.Set[byte], tbl *table.Table) (int, int, error) {

	file, err := e.fs.Create(path)
	if err != nil {
		return 0, 0, fmt.Errorf("creating dump file '%s': %w", path, err)
	}

	written, segments, err := writeSegments(ctx, file, start, data, breakSet, tbl)
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing dump file: %w", closeErr)
	}
	if err != nil {
		if removeErr := e.fs.Remove(path); removeErr != nil {
			e.logger.Warn("Removing incomplete dump file failed",
				log.String("file", path),
				log.Err(removeErr))
		}
		return 0, 0, fmt.Errorf("writing dump file '%s': %w", path, err)
	}
	return written, segments, nil
}

func writeSegments(ctx context.Context, w io.Writer, start uint64, data []byte,
	breakSet set.Set[byte], tbl *table.Table) (written, segments int, err error) {

	buf := bufio.NewWriter(w)
	segmentStart := 0
	for i := 0; i <= len(data); i++ {
		if i < len(data) && !breakSet.Contains(data[i]) {
			continue
		}

		if i > segmentStart {
			if segments%segmentCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return 0, 0, fmt.Errorf("exporting strings: %w", err)
				}
			}

			text := tbl.Decode(data[segmentStart:i])
			n, err := fmt.Fprintf(buf, "%08X: %s\n", start+uint64(segmentStart), text)
			if err != nil {
				return 0, 0, err
			}
			written += n
			segments++
		}
		segmentStart = i + 1
	}

	if err := buf.Flush(); err != nil {
		return 0, 0, err
	}
	return written, segments, nil
}
