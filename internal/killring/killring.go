// Package killring implements the process-wide kill ring: a bounded FIFO of
// killed text fragments with Emacs-style yank / yank-pop semantics.
package killring

import "github.com/atotto/clipboard"

// DefaultCapacity is the number of fragments the ring retains before
// evicting the oldest one.
const DefaultCapacity = 60

// Ring is a bounded ring of killed text fragments. Entries are kept newest
// first; Push evicts the oldest entry once the ring is at capacity.
//
// Yank and YankPop form a small state machine: Yank always starts from the
// newest entry; YankPop is only meaningful directly after a Yank or another
// YankPop, and walks backward through the ring, wrapping after a full
// cycle.
type Ring struct {
	entries  []string
	capacity int

	chained  bool // true directly after Yank/YankPop, enabling the next YankPop
	popIndex int  // offset from the head for the current yank chain
}

// New creates a kill ring with the given capacity (rounded up to 1).
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{capacity: capacity}
}

// Push adds a newly killed fragment as the new head of the ring and ends
// any in-progress yank chain. Empty fragments are not recorded.
//
// [FULL] Every push also attempts to mirror the fragment onto the OS
// clipboard via clipboard.WriteAll; failures (no clipboard available,
// headless environment) are silently ignored so the ring's documented
// FIFO semantics never depend on an external clipboard existing.
func (r *Ring) Push(text string) {
	if text == "" {
		return
	}
	r.entries = append([]string{text}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
	r.BreakChain()
	_ = clipboard.WriteAll(text)
}

// Len reports how many fragments are currently stored.
func (r *Ring) Len() int {
	return len(r.entries)
}

// Head returns the most recently killed fragment, if any.
func (r *Ring) Head() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	return r.entries[0], true
}

// Yank returns the head fragment and starts a new yank chain, so a
// following YankPop rotates to the next entry instead of being rejected.
//
// [FULL] When the in-process ring is empty (a fresh process that hasn't
// killed anything yet) it falls back to the OS clipboard via
// clipboard.ReadAll, best-effort; that fallback text does not start a
// yank chain, since it isn't a ring entry YankPop could rotate through.
func (r *Ring) Yank() (string, bool) {
	if len(r.entries) == 0 {
		r.chained = false
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			return text, true
		}
		return "", false
	}
	r.chained = true
	r.popIndex = 0
	return r.entries[0], true
}

// YankPop advances the current yank chain to the next older entry,
// wrapping around after the ring's full length (Property 5: a yank
// followed by a full cycle of pops returns to the original content). It
// fails if called outside an active yank chain.
func (r *Ring) YankPop() (string, bool) {
	if !r.chained || len(r.entries) == 0 {
		return "", false
	}
	r.popIndex = (r.popIndex + 1) % len(r.entries)
	return r.entries[r.popIndex], true
}

// BreakChain ends any in-progress yank chain. The command processor calls
// this whenever a command other than Yank/YankPop runs, so an unrelated
// edit can never be "continued" by a stray yank-pop.
func (r *Ring) BreakChain() {
	r.chained = false
	r.popIndex = 0
}

// Chained reports whether a YankPop would currently succeed.
func (r *Ring) Chained() bool {
	return r.chained
}
