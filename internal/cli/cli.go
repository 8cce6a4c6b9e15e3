// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/romedit/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: romedit [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Uncompressed != "" {
		offset := strings.ToUpper(strings.TrimPrefix(strings.ToLower(opts.Uncompressed), "0x"))
		if offset == "" || len(offset) > 8 || strings.Trim(offset, "0123456789ABCDEF") != "" {
			return fmt.Errorf("invalid uncompressed search offset '%s', expected up to 8 hex digits", opts.Uncompressed)
		}
		opts.Uncompressed = strings.Repeat("0", 8-len(offset)) + offset
	}

	if opts.Verify && opts.Strings {
		return errors.New("verify option is only supported for raw dumps, not with strings")
	}
	if opts.Verify && opts.Output == "" {
		return errors.New("verify option requires a dump output file")
	}
	if opts.DumpConfigured() && opts.Output == "" {
		return errors.New("dump range given but no output file set")
	}
	if opts.Output != "" && opts.Batch != "" {
		return errors.New("dump output file can not be combined with batch processing")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Table, "t", "", "name of the translation table file (.tbl) to load")
	flags.StringVar(&opts.Output, "o", "", "name of the dump output file, no dump is exported if not set")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.nes")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw binary file without any header")
	flags.BoolVar(&opts.KeepStale, "keep-stale", false, "keep previous pairings when a translation table entry is remapped")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the exported raw dump by reading it back and comparing it to the ROM")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.StringVar(&opts.Position, "p", "", "cursor position as hex offset")
	flags.StringVar(&opts.Search, "s", "", "text to search for, encoded using the translation table")
	flags.BoolVar(&opts.HexSearch, "hex", false, "search text is a list of hex bytes, for example \"A9 00\"")
	flags.IntVar(&opts.Select, "select", 0, "index of the search match to select")
	flags.StringVar(&opts.Compressed, "compressed", "", "selected compressed block offset as hex")
	flags.StringVar(&opts.Song, "song", "", "selected song offset as hex")
	flags.StringVar(&opts.Uncompressed, "uncompressed", "", "uncompressed search offset as hex, up to 8 digits")

	flags.StringVar(&opts.Start, "start", "", "dump start address as hex")
	flags.StringVar(&opts.End, "end", "", "dump end address as hex, inclusive")
	flags.StringVar(&opts.BreakBytes, "break", "", "hex bytes that terminate a raw dump or separate strings, for example \"00 FF\"")
	flags.BoolVar(&opts.Strings, "strings", false, "dump as strings decoded with the translation table")
}
