// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Table  string `flag:"t" usage:"translation table file (.tbl)"`
	Output string `flag:"o" usage:"dump output file, no dump is exported if empty"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.nes)"`
}

// Flags contains behavior options.
type Flags struct {
	Binary    bool `flag:"binary" usage:"treat input as raw binary without header"`
	KeepStale bool `flag:"keep-stale" usage:"keep previous pairings when a table entry is remapped"`
	Verify    bool `flag:"verify" usage:"verify a raw dump by reading it back and comparing to the ROM"`
	Debug     bool `flag:"debug" usage:"enable debug logging"`
	Quiet     bool `flag:"q" usage:"quiet mode"`
}

// SessionFlags contains the initial editing state of a session.
type SessionFlags struct {
	Position     string `flag:"p" usage:"cursor position as hex offset"`
	Search       string `flag:"s" usage:"text to search for"`
	HexSearch    bool   `flag:"hex" usage:"search text is a list of hex bytes"`
	Select       int    `flag:"select" usage:"index of the search match to select"`
	Compressed   string `flag:"compressed" usage:"selected compressed block offset as hex"`
	Song         string `flag:"song" usage:"selected song offset as hex"`
	Uncompressed string `flag:"uncompressed" usage:"uncompressed search offset (8 hex digits)"`
}

// DumpFlags contains the dump configuration.
type DumpFlags struct {
	Start      string `flag:"start" usage:"dump start address as hex"`
	End        string `flag:"end" usage:"dump end address as hex, inclusive"`
	BreakBytes string `flag:"break" usage:"hex bytes that terminate a dump or separate strings"`
	Strings    bool   `flag:"strings" usage:"dump as decoded strings"`
}

// Program options of the editor.
type Program struct {
	Parameters
	Flags
	SessionFlags
	DumpFlags
}

// DumpConfigured returns whether a dump range was given.
func (p Program) DumpConfigured() bool {
	return p.Start != "" || p.End != ""
}
