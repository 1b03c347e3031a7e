// Package doxygen reads and writes the JavaScript search index files that
// Doxygen generates under html/search/.
//
// The files are a small subset of JavaScript: "var" declarations whose
// values are nested arrays, objects with numeric keys, quoted strings and
// integers. The parser accepts exactly that subset.
package doxygen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/symdex"
)

// object is a parsed JavaScript object literal with keys in source order.
type object struct {
	keys   []string
	values map[string]any
}

// parser is a recursive-descent parser over a whole file held in memory.
type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func newParser(r io.Reader) (*parser, error) {
	b, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &parser{src: string(b), line: 1, col: 1}, nil
}

// errorf returns an EINVALID error annotated with the current position.
func (p *parser) errorf(format string, args ...any) error {
	return symdex.Errorf(symdex.EINVALID, "line %d, column %d: %s", p.line, p.col, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

// skip consumes whitespace and comments.
func (p *parser) skip() {
	for !p.eof() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.next()
		case strings.HasPrefix(p.src[p.pos:], "//"):
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			p.next()
			p.next()
			for !p.eof() && !strings.HasPrefix(p.src[p.pos:], "*/") {
				p.next()
			}
			if !p.eof() {
				p.next()
				p.next()
			}
		default:
			return
		}
	}
}

// expect consumes r or fails.
func (p *parser) expect(r rune) error {
	p.skip()
	if p.eof() {
		return p.errorf("expected %q, found end of input", r)
	}
	if got := p.peek(); got != r {
		return p.errorf("expected %q, found %q", r, got)
	}
	p.next()
	return nil
}

// declarations parses "var name = value;" statements until end of input.
func (p *parser) declarations() (map[string]any, error) {
	decls := make(map[string]any)
	for {
		p.skip()
		if p.eof() {
			return decls, nil
		}
		kw := p.ident()
		if kw != "var" && kw != "let" && kw != "const" {
			return nil, p.errorf("expected variable declaration")
		}
		p.skip()
		name := p.ident()
		if name == "" {
			return nil, p.errorf("expected variable name")
		}
		if err := p.expect('='); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		decls[name] = v
		p.skip()
		if p.peek() == ';' {
			p.next()
		}
	}
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if r == '_' || r == '$' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.next()
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) value() (any, error) {
	p.skip()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	switch r := p.peek(); {
	case r == '[':
		return p.array()
	case r == '{':
		return p.object()
	case r == '\'' || r == '"':
		return p.str()
	case r == '-' || unicode.IsDigit(r):
		return p.number()
	default:
		return nil, p.errorf("unexpected %q", r)
	}
}

func (p *parser) array() ([]any, error) {
	p.next() // [
	var elems []any
	for {
		p.skip()
		if p.peek() == ']' {
			p.next()
			return elems, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		p.skip()
		switch p.peek() {
		case ',':
			p.next()
		case ']':
		default:
			if p.eof() {
				return nil, p.errorf("unterminated array")
			}
			return nil, p.errorf("expected ',' or ']', found %q", p.peek())
		}
	}
}

func (p *parser) object() (*object, error) {
	p.next() // {
	obj := &object{values: make(map[string]any)}
	for {
		p.skip()
		if p.peek() == '}' {
			p.next()
			return obj, nil
		}
		var key string
		switch r := p.peek(); {
		case r == '\'' || r == '"':
			s, err := p.str()
			if err != nil {
				return nil, err
			}
			key = s
		case unicode.IsDigit(r):
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			key = strconv.Itoa(n)
		default:
			key = p.ident()
			if key == "" {
				if p.eof() {
					return nil, p.errorf("unterminated object")
				}
				return nil, p.errorf("expected object key, found %q", r)
			}
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, dup := obj.values[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.values[key] = v
		p.skip()
		switch p.peek() {
		case ',':
			p.next()
		case '}':
		default:
			if p.eof() {
				return nil, p.errorf("unterminated object")
			}
			return nil, p.errorf("expected ',' or '}', found %q", p.peek())
		}
	}
}

func (p *parser) number() (int, error) {
	start := p.pos
	if p.peek() == '-' {
		p.next()
	}
	for !p.eof() && unicode.IsDigit(p.peek()) {
		p.next()
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("invalid number %q", p.src[start:p.pos])
	}
	return n, nil
}

func (p *parser) str() (string, error) {
	quote := p.next()
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		r := p.next()
		switch r {
		case quote:
			return sb.String(), nil
		case '\n':
			return "", p.errorf("newline in string")
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated string")
			}
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (p *parser) escape(sb *strings.Builder) error {
	r := p.next()
	switch r {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case 'x', 'u':
		width := 2
		if r == 'u' {
			width = 4
		}
		if p.pos+width > len(p.src) {
			return p.errorf("truncated \\%c escape", r)
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return p.errorf("invalid \\%c escape", r)
		}
		for i := 0; i < width; i++ {
			p.next()
		}
		sb.WriteRune(rune(n))
	default:
		// \' \" \\ \/ and any other escaped character stand for themselves.
		sb.WriteRune(r)
	}
	return nil
}
