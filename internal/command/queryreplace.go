package command

import (
	"fmt"

	"github.com/tekugo/altre/internal/keymap"
	"github.com/tekugo/altre/internal/minibuffer"
	"github.com/tekugo/altre/internal/search"
)

// queryReplaceState drives the interactive y/n/!/q loop once both the
// pattern and replacement prompts (§4.5's QueryReplacePattern and
// QueryReplaceReplacement modes) have committed. It is checked ahead of
// the minibuffer in HandleEvent the same way an active search session is,
// since the confirm loop is not itself an editable input.
type queryReplaceState struct {
	pattern     string
	replacement string
	matches     []search.Match
	idx         int
	count       int
}

func cmdStartQueryReplace(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.QueryReplacePattern, "Query replace: ", nil)
	return Result{}
}

// beginQueryReplace computes every occurrence of pattern at or after point
// and, if any exist, starts the confirm loop on the first one. It reuses
// the incremental search engine's matcher (case-fold rule included)
// instead of re-implementing substring search.
func (p *Processor) beginQueryReplace(pattern, replacement string) Result {
	point := p.Buffer().Point()
	s := search.New(p.Buffer().Text(), point, search.Forward)
	for _, r := range pattern {
		s.AppendRune(r)
	}
	var matches []search.Match
	for _, m := range s.AllMatches() {
		if m.Start >= point {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return Result{Message: fmt.Sprintf("No matches for %q", pattern), Severity: SeverityError}
	}
	p.queryReplace = &queryReplaceState{pattern: pattern, replacement: replacement, matches: matches}
	p.Mini.Start(minibuffer.QueryReplaceReplacement, p.queryReplacePrompt(), nil)
	p.jumpToCurrentMatch()
	return Result{}
}

func (p *Processor) queryReplacePrompt() string {
	qr := p.queryReplace
	return fmt.Sprintf("Query replacing %s with %s: (y, n, !, q)", qr.pattern, qr.replacement)
}

func (p *Processor) jumpToCurrentMatch() {
	qr := p.queryReplace
	m := qr.matches[qr.idx]
	_ = p.Buffer().MoveTo(m.Start)
	p.Buffer().SetMarkAt(m.End)
}

// handleQueryReplaceKey routes one chord to the active query-replace
// confirm loop. y/space replaces the current match and advances; n/Delete
// skips it; ! replaces every remaining match unconditionally; q/Enter/any
// other key ends the loop in place.
func (p *Processor) handleQueryReplaceKey(c keymap.Chord) Result {
	switch {
	case c.Key == 'y' || c.Key == ' ':
		p.replaceCurrentMatch()
		return p.advanceQueryReplace()
	case c.Key == 'n' || c.Key == keymap.KeyDelete:
		p.queryReplace.idx++
		return p.advanceQueryReplace()
	case c.Key == '!':
		for p.queryReplace.idx < len(p.queryReplace.matches) {
			p.replaceCurrentMatch()
		}
		return p.finishQueryReplace()
	default:
		return p.finishQueryReplace()
	}
}

// replaceCurrentMatch substitutes the match at idx and shifts every later
// match's offsets by the length delta between pattern and replacement, so
// the precomputed match list stays valid without rescanning.
func (p *Processor) replaceCurrentMatch() {
	qr := p.queryReplace
	m := qr.matches[qr.idx]
	if _, err := p.Buffer().DeleteRange(m.Start, m.End); err != nil {
		qr.idx++
		return
	}
	if _, _, err := p.Buffer().InsertStringAt(m.Start, qr.replacement); err != nil {
		qr.idx++
		return
	}
	qr.count++
	delta := len(qr.replacement) - (m.End - m.Start)
	for i := qr.idx + 1; i < len(qr.matches); i++ {
		qr.matches[i].Start += delta
		qr.matches[i].End += delta
	}
	qr.idx++
}

func (p *Processor) advanceQueryReplace() Result {
	qr := p.queryReplace
	if qr.idx >= len(qr.matches) {
		return p.finishQueryReplace()
	}
	p.jumpToCurrentMatch()
	return Result{}
}

func (p *Processor) finishQueryReplace() Result {
	count := p.queryReplace.count
	p.queryReplace = nil
	p.Buffer().ClearMark()
	p.Mini.Cancel()
	return Result{Message: fmt.Sprintf("Replaced %d occurrence(s)", count), Severity: SeverityInfo}
}
