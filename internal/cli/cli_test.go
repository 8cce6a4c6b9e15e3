package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/romedit/internal/options"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional input",
			args: []string{"prog", "test.nes"},
			want: options.Program{Parameters: options.Parameters{Input: "test.nes"}},
		},
		{
			name: "input flag",
			args: []string{"prog", "-i", "test.nes"},
			want: options.Program{Parameters: options.Parameters{Input: "test.nes"}},
		},
		{
			name: "session flags",
			args: []string{"prog", "-p", "1A2B", "-s", "HELLO", "-select", "1", "-song", "8000", "test.nes"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.nes"},
				SessionFlags: options.SessionFlags{Position: "1A2B", Search: "HELLO", Select: 1, Song: "8000"},
			},
		},
		{
			name: "uncompressed offset is padded",
			args: []string{"prog", "-uncompressed", "0x1f0", "test.nes"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.nes"},
				SessionFlags: options.SessionFlags{Uncompressed: "000001F0"},
			},
		},
		{
			name: "dump flags",
			args: []string{"prog", "-o", "out.bin", "-start", "10", "-end", "20", "-break", "00", "-verify", "test.nes"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.nes", Output: "out.bin"},
				Flags:      options.Flags{Verify: true},
				DumpFlags:  options.DumpFlags{Start: "10", End: "20", BreakBytes: "00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Usage(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}
	_, err := ParseFlags()

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	os.Args = []string{"prog", "test.nes", "-q"}
	_, err = ParseFlags()
	assert.True(t, errors.As(err, &usageErr))
	assert.Contains(t, err.Error(), "Potential argument -q")
}

func TestNormalizeOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name: "no options",
			opts: options.Program{},
		},
		{
			name: "valid uncompressed offset",
			opts: options.Program{SessionFlags: options.SessionFlags{Uncompressed: "00010000"}},
		},
		{
			name:        "uncompressed offset too long",
			opts:        options.Program{SessionFlags: options.SessionFlags{Uncompressed: "123456789"}},
			expectError: true,
		},
		{
			name:        "uncompressed offset not hex",
			opts:        options.Program{SessionFlags: options.SessionFlags{Uncompressed: "12G4"}},
			expectError: true,
		},
		{
			name: "verify with strings",
			opts: options.Program{
				Parameters: options.Parameters{Output: "out.txt"},
				Flags:      options.Flags{Verify: true},
				DumpFlags:  options.DumpFlags{Strings: true},
			},
			expectError: true,
		},
		{
			name:        "verify without output",
			opts:        options.Program{Flags: options.Flags{Verify: true}},
			expectError: true,
		},
		{
			name:        "dump range without output",
			opts:        options.Program{DumpFlags: options.DumpFlags{Start: "0", End: "10"}},
			expectError: true,
		},
		{
			name: "output with batch",
			opts: options.Program{
				Parameters: options.Parameters{Output: "out.bin", Batch: "*.nes"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := normalizeOptions(&tt.opts)
			if tt.expectError {
				assert.True(t, err != nil)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
