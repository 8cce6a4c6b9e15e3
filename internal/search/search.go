// Package search implements the text and byte pattern search over the ROM
// buffer of a session.
package search

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/romedit/internal/session"
)

// chunkSize is the amount of ROM scanned between cancellation checks.
const chunkSize = 64 * 1024

// ErrEmptyPattern is returned when a query encodes to no bytes.
var ErrEmptyPattern = errors.New("search pattern is empty")

// Query describes what to search for.
type Query struct {
	Text string // display text, or hex byte values if Hex is set
	Hex  bool
}

// Engine searches the ROM buffer of a session.
type Engine struct {
	logger *log.Logger
}

// New creates a new search engine.
func New(logger *log.Logger) *Engine {
	return &Engine{
		logger: logger,
	}
}

// Run searches the session ROM for the query and stores the text together
// with all matches in the session. The first match gets selected.
// An empty query text clears the search result.
func (e *Engine) Run(ctx context.Context, sess *session.Session, query Query) ([]session.Match, error) {
	if query.Text == "" {
		sess.SetSearchResult("", nil, false)
		return nil, nil
	}

	pattern, err := e.encode(sess, query)
	if err != nil {
		return nil, fmt.Errorf("encoding search text: %w", err)
	}

	matches, err := scan(ctx, sess.Rom(), pattern)
	if err != nil {
		return nil, err
	}

	sess.SetSearchResult(query.Text, matches, true)

	e.logger.Debug("Search finished",
		log.String("text", query.Text),
		log.Int("pattern_length", len(pattern)),
		log.Int("matches", len(matches)))
	return matches, nil
}

func (e *Engine) encode(sess *session.Session, query Query) ([]byte, error) {
	if query.Hex {
		return ParseHexBytes(query.Text)
	}

	tbl := sess.Table()
	if tbl.Len() == 0 {
		e.logger.Debug("Translation table is empty, searching raw text bytes")
		return []byte(query.Text), nil
	}
	return tbl.Encode(query.Text)
}

// ParseHexBytes parses a list of hex byte values. Values can be separated by
// white space or commas, or written without separator.
func ParseHexBytes(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if s == "" {
		return nil, ErrEmptyPattern
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex byte list: %w", err)
	}
	return data, nil
}

// scan returns all, possibly overlapping, occurrences of pattern in data.
// The data is processed in chunks to allow cancellation of long scans.
func scan(ctx context.Context, data, pattern []byte) ([]session.Match, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	matches := []session.Match{}
	for chunkStart := 0; chunkStart <= len(data)-len(pattern); chunkStart += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning ROM: %w", err)
		}

		chunkEnd := chunkStart + chunkSize
		window := data[:min(len(data), chunkEnd+len(pattern)-1)]

		for start := chunkStart; start < chunkEnd; {
			index := bytes.Index(window[start:], pattern)
			if index < 0 {
				break
			}
			offset := start + index
			if offset >= chunkEnd {
				break
			}
			matches = append(matches, session.Match{
				Offset: uint64(offset),
				Length: len(pattern),
			})
			start = offset + 1
		}
	}
	return matches, nil
}
