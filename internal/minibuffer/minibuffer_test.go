package minibuffer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEditCommit(t *testing.T) {
	m := New()
	assert.False(t, m.Active())

	m.Start(ExecuteCommand, "M-x ", StaticSource{Candidates: []string{"save-buffer", "save-as"}})
	assert.True(t, m.Active())
	assert.Equal(t, "", m.Input())

	for _, r := range "save-" {
		m.InsertRune(r)
	}
	assert.Equal(t, "save-", m.Input())
	assert.ElementsMatch(t, []string{"save-buffer", "save-as"}, m.Candidates())

	mode, input := m.Commit()
	assert.Equal(t, ExecuteCommand, mode)
	assert.Equal(t, "save-", input)
	assert.False(t, m.Active())
}

// TestMinibufferCancel mirrors scenario S4: during FindFile, typing "/et"
// then Ctrl-g returns to Inactive.
func TestMinibufferCancel(t *testing.T) {
	m := New()
	m.Start(FindFile, "Find file: ", nil)
	for _, r := range "/et" {
		m.InsertRune(r)
	}
	m.Cancel()
	assert.Equal(t, Inactive, m.Mode())
	assert.Equal(t, "", m.Input())
}

func TestTabExpandsLongestCommonPrefixOrSingleCandidate(t *testing.T) {
	m := New()
	m.Start(ExecuteCommand, "M-x ", StaticSource{Candidates: []string{"save-buffer", "save-as"}})
	m.InsertRune('s')
	m.Tab()
	assert.Equal(t, "save-", m.Input())

	m.InsertRune('b')
	m.Tab()
	assert.Equal(t, "save-buffer", m.Input())
}

func TestHistoryPreviousNextStashesInProgressEdit(t *testing.T) {
	m := New()
	m.Start(ExecuteCommand, "M-x ", nil)
	m.InsertRune('a')
	m.Commit()

	m.Start(ExecuteCommand, "M-x ", nil)
	m.InsertRune('b')

	m.HistoryPrevious()
	assert.Equal(t, "a", m.Input())

	m.HistoryNext()
	assert.Equal(t, "b", m.Input())
}

func TestErrorAutoExpiresAfterFiveSeconds(t *testing.T) {
	m := New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.ShowError("boom", start)
	assert.Equal(t, Error, m.Mode())

	m.Tick(start.Add(4 * time.Second))
	assert.Equal(t, Error, m.Mode())

	m.Tick(start.Add(5*time.Second + time.Millisecond))
	assert.Equal(t, Inactive, m.Mode())
}

func TestStaticSourceFiltersByPrefix(t *testing.T) {
	s := StaticSource{Candidates: []string{"alpha", "alto", "beta"}}
	require.ElementsMatch(t, []string{"alpha", "alto"}, s.Complete("al"))
}
