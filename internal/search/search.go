// Package search implements the incremental search engine described in
// §4.6: a forward/backward matcher over the live buffer text that
// recomputes its match set from a fixed anchor on every pattern edit,
// wraps once past either end of the buffer, and keeps a stack of prior
// match states so backspace can revert to them instead of rescanning.
package search

import "strings"

// Direction is the search direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Match is a single occurrence of the pattern, as a half-open byte range.
type Match struct {
	Start, End int
}

// state is one entry on the match stack: the pattern length at the time
// plus the resulting match, so Backspace can pop back to it without
// rerunning the scan.
type state struct {
	patternLen int
	current    Match
	hasCurrent bool
	wrapped    bool
}

// Session drives one incremental search from C-s/C-r to commit/cancel.
type Session struct {
	text      string // snapshot of the buffer content at session start/refresh
	anchor    int
	direction Direction
	pattern   []rune
	stack     []state
	allCache  []Match
}

// New starts a session anchored at pos over the given buffer content.
func New(text string, anchor int, dir Direction) *Session {
	s := &Session{text: text, anchor: anchor, direction: dir}
	s.stack = []state{{patternLen: 0}}
	s.recompute()
	return s
}

// Refresh replaces the live buffer snapshot (called after the buffer's
// content has changed underneath an open session) and recomputes matches
// for the current pattern, preserving the original anchor.
func (s *Session) Refresh(text string) {
	s.text = text
	s.recompute()
}

// Pattern returns the current search pattern.
func (s *Session) Pattern() string {
	return string(s.pattern)
}

// Direction returns the session's search direction.
func (s *Session) Direction() Direction {
	return s.direction
}

// caseFold reports whether the pattern should be matched case-insensitively:
// on when the pattern is all-lowercase, per §4.6.
func caseFold(pattern []rune) bool {
	for _, r := range pattern {
		if r != toLower(r) {
			return false
		}
	}
	return true
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// AppendRune extends the pattern by one rune and recomputes the match.
func (s *Session) AppendRune(r rune) {
	s.pattern = append(s.pattern, r)
	s.recompute()
}

// Backspace removes the last rune of the pattern, reverting to the match
// state that was active before that rune was appended (the match stack),
// rather than rescanning.
func (s *Session) Backspace() {
	if len(s.pattern) == 0 {
		return
	}
	s.pattern = s.pattern[:len(s.pattern)-1]
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// recompute finds every match of the current pattern in s.text (Property
// 6: idempotent for the same pattern/anchor/content), then selects the
// first one reached from the anchor in the search direction, pushing a
// new match-stack entry.
func (s *Session) recompute() {
	s.allCache = findAll(s.text, string(s.pattern))
	m, wrapped, ok := firstFrom(s.allCache, s.anchor, s.direction)
	st := state{patternLen: len(s.pattern), wrapped: wrapped}
	if ok {
		st.current = m
		st.hasCurrent = true
	}
	if len(s.stack) > 0 && s.stack[len(s.stack)-1].patternLen == len(s.pattern) {
		s.stack[len(s.stack)-1] = st
	} else {
		s.stack = append(s.stack, st)
	}
}

// Advance moves to the next match in the search direction (repeated
// C-s/C-r), wrapping once past the buffer's end/start and tagging the
// resulting state "wrapped".
func (s *Session) Advance() {
	top := s.currentState()
	if !top.hasCurrent || len(s.allCache) == 0 {
		return
	}
	from := top.current.Start
	if s.direction == Forward {
		from = top.current.End
	}
	m, wrapped, ok := firstFrom(s.allCache, from, s.direction)
	if !ok {
		return
	}
	s.stack = append(s.stack, state{
		patternLen: len(s.pattern),
		current:    m,
		hasCurrent: true,
		wrapped:    wrapped || top.wrapped,
	})
}

func (s *Session) currentState() state {
	if len(s.stack) == 0 {
		return state{}
	}
	return s.stack[len(s.stack)-1]
}

// Current returns the active match, if any, and whether the session has
// wrapped around the buffer since it began.
func (s *Session) Current() (m Match, wrapped bool, ok bool) {
	top := s.currentState()
	return top.current, top.wrapped, top.hasCurrent
}

// AllMatches returns every match of the current pattern, for highlight
// rendering.
func (s *Session) AllMatches() []Match {
	return s.allCache
}

// findAll returns every occurrence of pattern in text using the
// Knuth-Morris-Pratt algorithm, honoring the all-lowercase case-fold rule.
func findAll(text, pattern string) []Match {
	if pattern == "" {
		return nil
	}
	patternRunes := []rune(pattern)
	folded := caseFold(patternRunes)

	haystack := text
	needle := pattern
	if folded {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(pattern)
	}

	hb := []byte(haystack)
	nb := []byte(needle)
	lps := computeLPS(nb)

	var out []Match
	i, j := 0, 0
	for i < len(hb) {
		if hb[i] == nb[j] {
			i++
			j++
		}
		if j == len(nb) {
			out = append(out, Match{Start: i - j, End: i})
			j = lps[j-1]
		} else if i < len(hb) && hb[i] != nb[j] {
			if j != 0 {
				j = lps[j-1]
			} else {
				i++
			}
		}
	}
	return out
}

func computeLPS(pattern []byte) []int {
	lps := make([]int, len(pattern))
	length := 0
	i := 1
	for i < len(pattern) {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

// firstFrom returns the first match reached from pos in dir, wrapping once
// if none is found before the buffer boundary.
func firstFrom(matches []Match, pos int, dir Direction) (Match, bool, bool) {
	if len(matches) == 0 {
		return Match{}, false, false
	}
	if dir == Forward {
		for _, m := range matches {
			if m.Start >= pos {
				return m, false, true
			}
		}
		return matches[0], true, true
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].End <= pos {
			return matches[i], false, true
		}
	}
	return matches[len(matches)-1], true, true
}
