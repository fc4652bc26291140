package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos is a (line, column) position in source text, 1-based, carried on
// every reader diagnostic per §4.9 ("Every AST node carries (line, column)
// for diagnostics").
type Pos struct {
	Line, Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// ReadError reports a failure tokenising or parsing source text.
type ReadError struct {
	Pos Pos
	Msg string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("lisp: parse error at %s: %s", e.Pos, e.Msg)
}

// symbolRune reports whether r may appear in a symbol, per §4.9: "letters,
// digits, and the set {+ - * / ! ? < > = _ . : $ %}".
func symbolRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '+', '-', '*', '/', '!', '?', '<', '>', '=', '_', '.', ':', '$', '%':
		return true
	}
	return false
}

// reader tokenises and parses one source string into a sequence of values,
// tracking line/column for diagnostics as it scans.
type reader struct {
	src        []rune
	pos        int
	line, col  int
}

func newReader(src string) *reader {
	return &reader{src: []rune(src), line: 1, col: 1}
}

func (r *reader) peek() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

func (r *reader) peekAt(offset int) (rune, bool) {
	i := r.pos + offset
	if i >= len(r.src) {
		return 0, false
	}
	return r.src[i], true
}

func (r *reader) here() Pos {
	return Pos{Line: r.line, Column: r.col}
}

func (r *reader) advance() rune {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) skipAtmosphere() {
	for {
		c, ok := r.peek()
		if !ok {
			return
		}
		if c == ';' {
			for {
				c, ok := r.peek()
				if !ok || c == '\n' {
					break
				}
				r.advance()
			}
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			r.advance()
			continue
		}
		return
	}
}

// ReadAll parses every top-level form in src and returns them in order.
func ReadAll(src string) ([]Value, error) {
	r := newReader(src)
	var forms []Value
	for {
		r.skipAtmosphere()
		if _, ok := r.peek(); !ok {
			return forms, nil
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

// ReadOne parses exactly one top-level form from src, erroring if trailing
// non-whitespace content remains (used by eval-expression, which evaluates
// a single form at a time).
func ReadOne(src string) (Value, error) {
	r := newReader(src)
	r.skipAtmosphere()
	if _, ok := r.peek(); !ok {
		return nil, &ReadError{Pos: r.here(), Msg: "empty input"}
	}
	v, err := r.readForm()
	if err != nil {
		return nil, err
	}
	r.skipAtmosphere()
	if _, ok := r.peek(); ok {
		return nil, &ReadError{Pos: r.here(), Msg: "trailing input after expression"}
	}
	return v, nil
}

func (r *reader) readForm() (Value, error) {
	r.skipAtmosphere()
	c, ok := r.peek()
	if !ok {
		return nil, &ReadError{Pos: r.here(), Msg: "unexpected end of input"}
	}

	switch {
	case c == '(':
		return r.readList()
	case c == ')':
		return nil, &ReadError{Pos: r.here(), Msg: "unexpected ')'"}
	case c == '\'':
		r.advance()
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return list(Symbol("quote"), inner), nil
	case c == '"':
		return r.readString()
	case c == '#':
		return r.readHash()
	default:
		return r.readAtom()
	}
}

func (r *reader) readList() (Value, error) {
	start := r.here()
	r.advance() // consume '('
	var items []Value
	var tail Value = Nil

	for {
		r.skipAtmosphere()
		c, ok := r.peek()
		if !ok {
			return nil, &ReadError{Pos: start, Msg: "unterminated list"}
		}
		if c == ')' {
			r.advance()
			break
		}
		if c == '.' {
			if next, ok := r.peekAt(1); !ok || next == ' ' || next == '\t' || next == '\n' || next == ')' {
				r.advance()
				r.skipAtmosphere()
				v, err := r.readForm()
				if err != nil {
					return nil, err
				}
				tail = v
				r.skipAtmosphere()
				c, ok := r.peek()
				if !ok || c != ')' {
					return nil, &ReadError{Pos: r.here(), Msg: "malformed dotted pair"}
				}
				r.advance()
				break
			}
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = &Cons{Car: items[i], Cdr: result}
	}
	return result, nil
}

func (r *reader) readString() (Value, error) {
	start := r.here()
	r.advance() // consume opening quote
	var b strings.Builder
	for {
		c, ok := r.peek()
		if !ok {
			return nil, &ReadError{Pos: start, Msg: "unterminated string"}
		}
		if c == '"' {
			r.advance()
			return String(b.String()), nil
		}
		if c == '\\' {
			r.advance()
			esc, ok := r.peek()
			if !ok {
				return nil, &ReadError{Pos: start, Msg: "unterminated string escape"}
			}
			r.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return nil, &ReadError{Pos: start, Msg: fmt.Sprintf("unknown string escape \\%c", esc)}
			}
			continue
		}
		b.WriteRune(r.advance())
	}
}

func (r *reader) readHash() (Value, error) {
	start := r.here()
	r.advance() // consume '#'
	c, ok := r.peek()
	if !ok {
		return nil, &ReadError{Pos: start, Msg: "unexpected end of input after '#'"}
	}
	switch c {
	case 't':
		r.advance()
		return Bool(true), nil
	case 'f':
		r.advance()
		return Bool(false), nil
	default:
		return nil, &ReadError{Pos: start, Msg: fmt.Sprintf("unknown '#' syntax '#%c'", c)}
	}
}

func (r *reader) readAtom() (Value, error) {
	start := r.here()
	var b strings.Builder
	for {
		c, ok := r.peek()
		if !ok || !symbolRune(c) {
			break
		}
		b.WriteRune(r.advance())
	}
	text := b.String()
	if text == "" {
		return nil, &ReadError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", first(r))}
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i), nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && looksNumeric(text) {
		return Float(f), nil
	}
	return Symbol(text), nil
}

func first(r *reader) rune {
	c, _ := r.peek()
	return c
}

// looksNumeric guards against symbols like "-" or "..." that ParseFloat
// would otherwise reject but some float-ish prefix might accept; only
// strings starting with a digit or a sign-then-digit are floats.
func looksNumeric(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}
