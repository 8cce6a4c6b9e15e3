// Package table provides the translation table between ROM byte values and
// the glyphs used to display in-ROM text.
package table

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// Pair is a single glyph and byte translation.
type Pair struct {
	Glyph string
	Byte  byte
}

// Table maps glyphs to bytes and bytes to glyphs.
// It is not safe for concurrent use.
type Table struct {
	glyphToByte map[string]byte
	byteToGlyph map[byte]string

	maxGlyphLen int
}

// New returns an empty table.
func New() *Table {
	return &Table{
		glyphToByte: make(map[string]byte),
		byteToGlyph: make(map[byte]string),
	}
}

// Add sets both directions of the pair. Previous pairings of glyph with
// another byte or of b with another glyph are left in place.
func (t *Table) Add(glyph string, b byte) {
	t.glyphToByte[glyph] = b
	t.byteToGlyph[b] = glyph
	if len(glyph) > t.maxGlyphLen {
		t.maxGlyphLen = len(glyph)
	}
}

// Replace sets both directions of the pair after removing any previous
// pairing of glyph or b, keeping the table a bijection.
func (t *Table) Replace(glyph string, b byte) {
	if old, ok := t.glyphToByte[glyph]; ok && old != b {
		if t.byteToGlyph[old] == glyph {
			delete(t.byteToGlyph, old)
		}
	}
	if old, ok := t.byteToGlyph[b]; ok && old != glyph {
		if t.glyphToByte[old] == b {
			delete(t.glyphToByte, old)
		}
	}
	t.Add(glyph, b)
}

// Lookup returns the byte that glyph maps to.
func (t *Table) Lookup(glyph string) (byte, bool) {
	b, ok := t.glyphToByte[glyph]
	return b, ok
}

// Glyph returns the glyph that b maps to.
func (t *Table) Glyph(b byte) (string, bool) {
	glyph, ok := t.byteToGlyph[b]
	return glyph, ok
}

// Len returns the number of mapped byte values.
func (t *Table) Len() int {
	return len(t.byteToGlyph)
}

// GlyphToByte returns a copy of the glyph to byte mapping.
func (t *Table) GlyphToByte() map[string]byte {
	return maps.Clone(t.glyphToByte)
}

// ByteToGlyph returns a copy of the byte to glyph mapping.
func (t *Table) ByteToGlyph() map[byte]string {
	return maps.Clone(t.byteToGlyph)
}

// Pairs returns the byte to glyph entries sorted by byte value.
func (t *Table) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t.byteToGlyph))
	for b, glyph := range t.byteToGlyph {
		pairs = append(pairs, Pair{Glyph: glyph, Byte: b})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Byte < pairs[j].Byte
	})
	return pairs
}

// Violations returns the entries of either mapping whose reverse entry
// points somewhere else. A table only built with Replace has none.
func (t *Table) Violations() []Pair {
	var pairs []Pair
	for glyph, b := range t.glyphToByte {
		if t.byteToGlyph[b] != glyph {
			pairs = append(pairs, Pair{Glyph: glyph, Byte: b})
		}
	}
	for b, glyph := range t.byteToGlyph {
		if mapped, ok := t.glyphToByte[glyph]; !ok || mapped != b {
			pairs = append(pairs, Pair{Glyph: glyph, Byte: b})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Byte != pairs[j].Byte {
			return pairs[i].Byte < pairs[j].Byte
		}
		return pairs[i].Glyph < pairs[j].Glyph
	})
	return pairs
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		glyphToByte: maps.Clone(t.glyphToByte),
		byteToGlyph: maps.Clone(t.byteToGlyph),
		maxGlyphLen: t.maxGlyphLen,
	}
}

// Encode converts text to ROM bytes, matching the longest known glyph at
// every position.
func (t *Table) Encode(text string) ([]byte, error) {
	data := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		n := min(t.maxGlyphLen, len(text)-i)
		for ; n > 0; n-- {
			if b, ok := t.glyphToByte[text[i:i+n]]; ok {
				data = append(data, b)
				break
			}
		}
		if n == 0 {
			return nil, fmt.Errorf("no translation for text '%s' at position %d", text[i:], i)
		}
		i += n
	}
	return data, nil
}

// Decode converts ROM bytes to text. Bytes without glyph are written as <XX>.
func (t *Table) Decode(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if glyph, ok := t.byteToGlyph[b]; ok {
			sb.WriteString(glyph)
			continue
		}
		fmt.Fprintf(&sb, "<%02X>", b)
	}
	return sb.String()
}
