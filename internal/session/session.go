// Package session holds the in-memory state of a ROM editing session.
package session

import (
	"sync"

	"github.com/retroenv/romedit/internal/table"
	"github.com/rs/xid"
)

// DefaultUncompressedSearchOffset is the initial decompression search address.
const DefaultUncompressedSearchOffset = "00000000"

// Options controls the behavior of a session.
type Options struct {
	// PruneStaleTranslations removes previous pairings of a glyph or byte
	// when a translation pair is added, keeping the table a bijection.
	PruneStaleTranslations bool
}

// Session is the exclusive owner of the ROM buffer and all state derived
// from it. All methods are safe for concurrent use.
type Session struct {
	opts Options

	mu sync.RWMutex
	id xid.ID

	rom      []byte
	position Position
	table    *table.Table

	search searchState
	dump   DumpConfig

	uncompressedSearchOffset string
	compressedOffset         uint64
	songOffset               uint64
}

// New returns a session with every field set to its default.
func New(opts Options) *Session {
	s := &Session{
		opts: opts,
	}
	s.reset()
	return s
}

// ID returns the identifier of the current session. It changes on every reset.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id.String()
}

// Reset restores every field to its default, including both translation
// table mappings.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// reset must be called with the write lock held.
func (s *Session) reset() {
	s.id = xid.New()
	s.rom = []byte{}
	s.position = 0
	s.table = table.New()
	s.search = searchState{
		matches: []Match{},
	}
	s.dump = DumpConfig{}
	s.uncompressedSearchOffset = DefaultUncompressedSearchOffset
	s.compressedOffset = 0
	s.songOffset = 0
}

// SetRom replaces the ROM buffer. The session takes ownership of data and
// never modifies it. Derived state is not reset.
func (s *Session) SetRom(data []byte) {
	if data == nil {
		data = []byte{}
	}
	s.mu.Lock()
	s.rom = data
	s.mu.Unlock()
}

// Rom returns the ROM buffer. The returned slice must not be modified.
func (s *Session) Rom() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rom
}

// RomSize returns the length of the ROM buffer.
func (s *Session) RomSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rom)
}

// SetHexPosition sets the cursor from a hexadecimal string. Invalid input
// stores NaN.
func (s *Session) SetHexPosition(hex string) {
	pos := ParseHexPosition(hex)
	s.mu.Lock()
	s.position = pos
	s.mu.Unlock()
}

// HexPosition returns the cursor position.
func (s *Session) HexPosition() Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

// SetUncompressedSearchOffset stores the last address searched in
// decompressed space.
func (s *Session) SetUncompressedSearchOffset(offset string) {
	s.mu.Lock()
	s.uncompressedSearchOffset = offset
	s.mu.Unlock()
}

// UncompressedSearchOffset returns the last address searched in decompressed space.
func (s *Session) UncompressedSearchOffset() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uncompressedSearchOffset
}

// SetSelectedCompressedOffset stores the offset of the selected compressed block.
func (s *Session) SetSelectedCompressedOffset(offset uint64) {
	s.mu.Lock()
	s.compressedOffset = offset
	s.mu.Unlock()
}

// SelectedCompressedOffset returns the offset of the selected compressed block.
func (s *Session) SelectedCompressedOffset() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compressedOffset
}

// SetSelectedSongOffset stores the offset of the selected song.
func (s *Session) SetSelectedSongOffset(offset uint64) {
	s.mu.Lock()
	s.songOffset = offset
	s.mu.Unlock()
}

// SelectedSongOffset returns the offset of the selected song.
func (s *Session) SelectedSongOffset() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.songOffset
}
