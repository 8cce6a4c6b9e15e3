// Package detector handles ROM format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/options"
)

// Format is the container format of a ROM file.
type Format string

// Supported ROM formats.
const (
	Binary Format = "binary"
	INES   Format = "ines"
)

func (f Format) String() string {
	return string(f)
}

// Detector handles ROM format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the ROM format. The binary option forces raw binary
// handling, otherwise the format is detected from the file extension.
func (d *Detector) Detect(opts options.Program) Format {
	if opts.Binary {
		return Binary
	}

	format := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected format",
		log.Stringer("format", format),
		log.String("file", opts.Input))
	return format
}

// detectFromFile determines the ROM format based on file extension.
func (d *Detector) detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return INES
	default:
		return Binary
	}
}
