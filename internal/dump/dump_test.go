package dump

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/session"
	"github.com/spf13/afero"
)

func newTestSession() *session.Session {
	sess := session.New(session.Options{})
	sess.SetRom([]byte{
		0x00, 0x10, 0x11, 0xff, 0x12, 0x12, 0xff, 0xff, 0x13, 0x7f,
	})
	sess.AddTranslationPair("H", 0x10)
	sess.AddTranslationPair("I", 0x11)
	sess.AddTranslationPair("L", 0x12)
	sess.AddTranslationPair("O", 0x13)
	return sess
}

func TestExportRaw(t *testing.T) {
	tests := []struct {
		name string
		cfg  session.DumpConfig
		want []byte
	}{
		{
			name: "full range",
			cfg:  session.DumpConfig{StartAddress: "0", EndAddress: "9"},
			want: []byte{0x00, 0x10, 0x11, 0xff, 0x12, 0x12, 0xff, 0xff, 0x13, 0x7f},
		},
		{
			name: "inclusive end",
			cfg:  session.DumpConfig{StartAddress: "0x1", EndAddress: "0x2"},
			want: []byte{0x10, 0x11},
		},
		{
			name: "terminated by break byte",
			cfg:  session.DumpConfig{StartAddress: "1", EndAddress: "9", BreakBytes: "FF"},
			want: []byte{0x10, 0x11},
		},
		{
			name: "break byte at start",
			cfg:  session.DumpConfig{StartAddress: "3", EndAddress: "9", BreakBytes: "ff"},
			want: []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.NewTestLogger(t)
			fs := afero.NewMemMapFs()
			e := New(logger, fs)

			sess := newTestSession()
			sess.SetDumpInfo(tt.cfg)

			result, err := e.Export(context.Background(), sess, "dump.bin")
			assert.NoError(t, err)
			assert.Equal(t, len(tt.want), result.Written)
			assert.Equal(t, 1, result.Segments)

			data, err := afero.ReadFile(fs, "dump.bin")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestExportStrings(t *testing.T) {
	logger := log.NewTestLogger(t)
	fs := afero.NewMemMapFs()
	e := New(logger, fs)

	sess := newTestSession()
	sess.SetDumpInfo(session.DumpConfig{
		StartAddress: "1",
		EndAddress:   "9",
		BreakBytes:   "FF",
		Strings:      true,
	})

	result, err := e.Export(context.Background(), sess, "dump.txt")
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Segments)
	assert.Equal(t, uint64(1), result.Start)
	assert.Equal(t, uint64(9), result.End)

	data, err := afero.ReadFile(fs, "dump.txt")
	assert.NoError(t, err)
	want := "00000001: HI\n" +
		"00000004: LL\n" +
		"00000008: O<7F>\n"
	assert.Equal(t, want, string(data))
	assert.Equal(t, len(want), result.Written)
}

func TestExportStringsWithoutBreakBytes(t *testing.T) {
	logger := log.NewTestLogger(t)
	fs := afero.NewMemMapFs()
	e := New(logger, fs)

	sess := newTestSession()
	sess.SetDumpInfo(session.DumpConfig{StartAddress: "1", EndAddress: "2", Strings: true})

	result, err := e.Export(context.Background(), sess, "dump.txt")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Segments)

	data, err := afero.ReadFile(fs, "dump.txt")
	assert.NoError(t, err)
	assert.Equal(t, "00000001: HI\n", string(data))
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     session.DumpConfig
		wantErr error
		errText string
	}{
		{
			name:    "start after end",
			cfg:     session.DumpConfig{StartAddress: "5", EndAddress: "2"},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "end beyond rom",
			cfg:     session.DumpConfig{StartAddress: "0", EndAddress: "A"},
			wantErr: ErrOutOfBounds,
		},
		{
			name:    "empty start",
			cfg:     session.DumpConfig{EndAddress: "2"},
			errText: "parsing start address",
		},
		{
			name:    "invalid end",
			cfg:     session.DumpConfig{StartAddress: "0", EndAddress: "zz"},
			errText: "parsing end address",
		},
		{
			name:    "invalid break bytes",
			cfg:     session.DumpConfig{StartAddress: "0", EndAddress: "2", BreakBytes: "F"},
			errText: "parsing break bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.NewTestLogger(t)
			e := New(logger, afero.NewMemMapFs())

			sess := newTestSession()
			sess.SetDumpInfo(tt.cfg)

			_, err := e.Export(context.Background(), sess, "dump.bin")
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
			if tt.errText != "" {
				assert.ErrorContains(t, err, tt.errText)
			}
		})
	}
}

func TestExportCanceled(t *testing.T) {
	logger := log.NewTestLogger(t)
	fs := afero.NewMemMapFs()
	e := New(logger, fs)

	sess := newTestSession()
	sess.SetDumpInfo(session.DumpConfig{StartAddress: "0", EndAddress: "9", Strings: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Export(ctx, sess, "dump.txt")
	assert.True(t, errors.Is(err, context.Canceled))

	exists, err := afero.Exists(fs, "dump.txt")
	assert.NoError(t, err)
	assert.False(t, exists)
}

var errDiskFull = errors.New("disk full")

// failingFs creates files that reject every write.
type failingFs struct {
	afero.Fs
}

func (f failingFs) Create(name string) (afero.File, error) {
	file, err := f.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return failingFile{File: file}, nil
}

type failingFile struct {
	afero.File
}

func (failingFile) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestExportStringsWriteError(t *testing.T) {
	fs := afero.NewMemMapFs()
	e := New(log.NewTestLogger(t), failingFs{Fs: fs})

	sess := newTestSession()
	sess.SetDumpInfo(session.DumpConfig{StartAddress: "0", EndAddress: "9", BreakBytes: "FF", Strings: true})

	_, err := e.Export(context.Background(), sess, "dump.txt")
	assert.True(t, errors.Is(err, errDiskFull))

	exists, err := afero.Exists(fs, "dump.txt")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "8000", want: 0x8000},
		{input: "0x8000", want: 0x8000},
		{input: " 1f ", want: 0x1f},
		{input: "", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "12zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
