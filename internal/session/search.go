package session

import (
	"errors"
	"slices"
)

// ErrMatchIndex is returned when selecting a match that is not part of the
// current search result.
var ErrMatchIndex = errors.New("match index out of range")

// Match describes a search hit in the ROM buffer.
type Match struct {
	Offset uint64
	Length int
}

type searchState struct {
	text        string
	matches     []Match
	selected    Match
	hasSelected bool
}

// SetSearchText replaces the active search text. Stored matches are kept.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	s.search.text = text
	s.mu.Unlock()
}

// SearchText returns the active search text.
func (s *Session) SearchText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search.text
}

// SetSearchMatches replaces the stored matches. They are not checked
// against the search text.
func (s *Session) SetSearchMatches(matches []Match) {
	matches = cloneMatches(matches)
	s.mu.Lock()
	s.search.matches = matches
	s.mu.Unlock()
}

// SearchMatches returns a copy of the stored matches.
func (s *Session) SearchMatches() []Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMatches(s.search.matches)
}

// SetSelectedMatch replaces the highlighted match. It is not checked against
// the stored matches.
func (s *Session) SetSelectedMatch(match Match) {
	s.mu.Lock()
	s.search.selected = match
	s.search.hasSelected = true
	s.mu.Unlock()
}

// SelectedMatch returns the highlighted match and whether one is set.
func (s *Session) SelectedMatch() (Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search.selected, s.search.hasSelected
}

// ClearSelectedMatch removes the highlighted match.
func (s *Session) ClearSelectedMatch() {
	s.mu.Lock()
	s.search.selected = Match{}
	s.search.hasSelected = false
	s.mu.Unlock()
}

// SetSearchResult replaces search text and matches in one step. The
// selection is cleared, or set to the first match if selectFirst is true
// and matches is not empty.
func (s *Session) SetSearchResult(text string, matches []Match, selectFirst bool) {
	matches = cloneMatches(matches)
	s.mu.Lock()
	s.search = searchState{
		text:    text,
		matches: matches,
	}
	if selectFirst && len(matches) > 0 {
		s.search.selected = matches[0]
		s.search.hasSelected = true
	}
	s.mu.Unlock()
}

// SelectMatch highlights the match at index of the stored matches.
func (s *Session) SelectMatch(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.search.matches) {
		return ErrMatchIndex
	}
	s.search.selected = s.search.matches[index]
	s.search.hasSelected = true
	return nil
}

func cloneMatches(matches []Match) []Match {
	if matches == nil {
		return []Match{}
	}
	return slices.Clone(matches)
}
