package session

import (
	"slices"

	"github.com/retroenv/romedit/internal/table"
)

// AddTranslationPair maps glyph to b and b to glyph. Both directions are
// updated under the same lock. If pruning is enabled, previous pairings of
// glyph or b are removed first.
func (s *Session) AddTranslationPair(glyph string, b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.PruneStaleTranslations {
		s.table.Replace(glyph, b)
	} else {
		s.table.Add(glyph, b)
	}
}

// AddTranslationPairs adds all pairs in one step.
func (s *Session) AddTranslationPairs(pairs []table.Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range pairs {
		if s.opts.PruneStaleTranslations {
			s.table.Replace(p.Glyph, p.Byte)
		} else {
			s.table.Add(p.Glyph, p.Byte)
		}
	}
}

// GlyphToByte returns a copy of the glyph to byte mapping.
func (s *Session) GlyphToByte() map[string]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.GlyphToByte()
}

// ByteToGlyph returns a copy of the byte to glyph mapping.
func (s *Session) ByteToGlyph() map[byte]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.ByteToGlyph()
}

// Table returns a copy of the translation table.
func (s *Session) Table() *table.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// State is a consistent copy of all session fields.
type State struct {
	ID       string
	Rom      []byte
	Position Position

	GlyphToByte map[string]byte
	ByteToGlyph map[byte]string

	SearchText       string
	SearchMatches    []Match
	SelectedMatch    Match
	HasSelectedMatch bool

	Dump DumpConfig

	UncompressedSearchOffset string
	SelectedCompressedOffset uint64
	SelectedSongOffset       uint64
}

// Snapshot returns all fields read under a single lock. The ROM buffer is
// shared, everything else is copied.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		ID:       s.id.String(),
		Rom:      s.rom,
		Position: s.position,

		GlyphToByte: s.table.GlyphToByte(),
		ByteToGlyph: s.table.ByteToGlyph(),

		SearchText:       s.search.text,
		SearchMatches:    slices.Clone(s.search.matches),
		SelectedMatch:    s.search.selected,
		HasSelectedMatch: s.search.hasSelected,

		Dump: s.dump,

		UncompressedSearchOffset: s.uncompressedSearchOffset,
		SelectedCompressedOffset: s.compressedOffset,
		SelectedSongOffset:       s.songOffset,
	}
}
