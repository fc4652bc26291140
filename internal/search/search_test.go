package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIncrementalSearchScenario mirrors scenario S3: buffer "foo bar foo",
// C-s, type "foo" moves point to 3 (end of first match), a second C-s
// advances to 11 (end of the second match).
func TestIncrementalSearchScenario(t *testing.T) {
	text := "foo bar foo"
	s := New(text, 0, Forward)
	for _, r := range "foo" {
		s.AppendRune(r)
	}
	m, wrapped, ok := s.Current()
	require.True(t, ok)
	assert.False(t, wrapped)
	assert.Equal(t, 3, m.End)

	s.Advance()
	m, wrapped, ok = s.Current()
	require.True(t, ok)
	assert.False(t, wrapped)
	assert.Equal(t, 11, m.End)
}

func TestSearchIdempotence(t *testing.T) {
	text := "abc abc abc"
	s1 := New(text, 0, Forward)
	s2 := New(text, 0, Forward)
	for _, r := range "abc" {
		s1.AppendRune(r)
		s2.AppendRune(r)
	}
	assert.Equal(t, s1.AllMatches(), s2.AllMatches())
	m1, w1, ok1 := s1.Current()
	m2, w2, ok2 := s2.Current()
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, w1, w2)
	assert.Equal(t, m1, m2)
}

func TestSearchWrapsOnceAndTags(t *testing.T) {
	text := "x foo y"
	s := New(text, 6, Forward) // anchor after the only match
	for _, r := range "foo" {
		s.AppendRune(r)
	}
	_, wrapped, ok := s.Current()
	require.True(t, ok)
	assert.True(t, wrapped)
}

func TestSearchBackspaceRevertsMatchStack(t *testing.T) {
	text := "food"
	s := New(text, 0, Forward)
	s.AppendRune('f')
	s.AppendRune('o')
	s.AppendRune('o')
	s.AppendRune('x') // no longer matches anything
	_, _, ok := s.Current()
	assert.False(t, ok)

	s.Backspace()
	m, _, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 3, m.End)
}

func TestCaseFoldOnlyWhenPatternAllLowercase(t *testing.T) {
	text := "Foo foo"
	lower := New(text, 0, Forward)
	for _, r := range "foo" {
		lower.AppendRune(r)
	}
	assert.Len(t, lower.AllMatches(), 2) // case-folded: matches both

	mixed := New(text, 0, Forward)
	for _, r := range "Foo" {
		mixed.AppendRune(r)
	}
	assert.Len(t, mixed.AllMatches(), 1) // exact: matches only "Foo"
}

func TestBackwardSearch(t *testing.T) {
	text := "foo bar foo"
	s := New(text, len(text), Backward)
	for _, r := range "foo" {
		s.AppendRune(r)
	}
	m, _, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 8, m.Start)
}
