package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads translation pairs in the .tbl text format. Every line has the
// form HH=glyph with HH being a hex byte value. Empty lines, comment lines
// starting with # or ; and end token lines starting with / are skipped.
func Parse(reader io.Reader) ([]Pair, error) {
	var pairs []Pair
	scanner := bufio.NewScanner(reader)

	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNumber == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' || trimmed[0] == ';' || trimmed[0] == '/' {
			continue
		}

		pair, err := parseLine(strings.TrimLeft(line, " \t"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		pairs = append(pairs, pair)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	return pairs, nil
}

func parseLine(line string) (Pair, error) {
	key, glyph, ok := strings.Cut(line, "=")
	if !ok {
		return Pair{}, fmt.Errorf("missing '=' in '%s'", line)
	}
	if glyph == "" {
		return Pair{}, fmt.Errorf("missing glyph for '%s'", key)
	}

	key = strings.TrimSpace(key)
	if len(key) != 2 {
		return Pair{}, fmt.Errorf("invalid byte value '%s'", key)
	}
	value, err := strconv.ParseUint(key, 16, 8)
	if err != nil {
		return Pair{}, fmt.Errorf("invalid byte value '%s': %w", key, err)
	}

	return Pair{Glyph: glyph, Byte: byte(value)}, nil
}
