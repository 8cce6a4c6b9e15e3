// Package loader handles ROM and translation table file loading.
package loader

import (
	"bytes"
	"fmt"

	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/detector"
	"github.com/retroenv/romedit/internal/table"
	"github.com/spf13/afero"
)

// Loader handles loading ROM and table files from a file system.
type Loader struct {
	logger *log.Logger
	fs     afero.Fs
}

// New creates a new loader.
func New(logger *log.Logger, fs afero.Fs) *Loader {
	return &Loader{
		logger: logger,
		fs:     fs,
	}
}

// LoadROM reads the complete ROM file. The returned buffer always contains
// the whole file including any header. For iNES files the header is only
// inspected for logging, a broken header does not prevent loading.
func (l *Loader) LoadROM(path string, format detector.Format) ([]byte, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	l.logger.Debug("ROM file read",
		log.String("file", path),
		log.Int("size", len(data)),
		log.Stringer("format", format))

	if format == detector.INES {
		l.inspectHeader(path, data)
	}
	return data, nil
}

func (l *Loader) inspectHeader(path string, data []byte) {
	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		l.logger.Warn("Parsing iNES header failed, loading as raw data",
			log.String("file", path),
			log.Err(err))
		return
	}

	l.logger.Info("iNES ROM",
		log.String("file", path),
		log.Uint16("mapper", cart.Mapper),
		log.Int("prg_size", len(cart.PRG)),
		log.Int("chr_size", len(cart.CHR)))
}

// LoadTable reads and parses a translation table file.
func (l *Loader) LoadTable(path string) ([]table.Pair, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	pairs, err := table.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing table file %s: %w", path, err)
	}

	l.logger.Debug("Translation table read",
		log.String("file", path),
		log.Int("pairs", len(pairs)))
	return pairs, nil
}
