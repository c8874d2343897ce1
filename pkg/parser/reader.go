package parser

import (
	"fmt"
	"strings"
	"unicode"

	"lumen/interpreter-go/pkg/ast"
)

// Error is a syntax error at a source position.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func errorAt(pos ast.Position, format string, args ...any) *Error {
	return &Error{Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf(format, args...)}
}

// sexp is either an atom or a parenthesised list.
type sexp struct {
	atom   string
	list   []*sexp
	isList bool
	span   ast.Span
}

func (s *sexp) String() string {
	if !s.isList {
		return s.atom
	}
	parts := make([]string, len(s.list))
	for idx, item := range s.list {
		parts[idx] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

type tokenKind int

const (
	tokenOpen tokenKind = iota
	tokenClose
	tokenAtom
)

type token struct {
	kind  tokenKind
	text  string
	start ast.Position
	end   ast.Position
}

// lexer splits source into parentheses and atoms. Quoted strings are single
// atoms that keep their quotes and may contain spaces; ';' starts a comment
// that runs to the end of the line.
type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newLexer(source []byte) *lexer {
	return &lexer{src: []rune(string(source)), line: 1, col: 1}
}

func (l *lexer) position() ast.Position {
	return ast.Position{Line: l.line, Column: l.col}
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			return tokens, nil
		}
		start := l.position()
		switch r := l.src[l.pos]; r {
		case '(', '[':
			l.advance()
			tokens = append(tokens, token{kind: tokenOpen, text: string(r), start: start, end: l.position()})
		case ')', ']':
			l.advance()
			tokens = append(tokens, token{kind: tokenClose, text: string(r), start: start, end: l.position()})
		case '"':
			text, err := l.readString(start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenAtom, text: text, start: start, end: l.position()})
		default:
			var sb strings.Builder
			for l.pos < len(l.src) {
				c := l.src[l.pos]
				if unicode.IsSpace(c) || c == '(' || c == ')' || c == '[' || c == ']' || c == ';' {
					break
				}
				sb.WriteRune(l.advance())
			}
			tokens = append(tokens, token{kind: tokenAtom, text: sb.String(), start: start, end: l.position()})
		}
	}
}

func (l *lexer) readString(start ast.Position) (string, error) {
	var sb strings.Builder
	sb.WriteRune(l.advance())
	for l.pos < len(l.src) {
		r := l.advance()
		sb.WriteRune(r)
		switch r {
		case '\\':
			if l.pos < len(l.src) {
				sb.WriteRune(l.advance())
			}
		case '"':
			return sb.String(), nil
		}
	}
	return "", errorAt(start, "unterminated string literal")
}

// read turns the token stream into top-level s-expressions.
func read(source []byte) ([]*sexp, error) {
	tokens, err := newLexer(source).tokenize()
	if err != nil {
		return nil, err
	}
	var (
		out   []*sexp
		stack []*sexp
	)
	for _, tok := range tokens {
		switch tok.kind {
		case tokenOpen:
			stack = append(stack, &sexp{isList: true, span: ast.Span{Start: tok.start}})
		case tokenClose:
			if len(stack) == 0 {
				return nil, errorAt(tok.start, "unexpected '%s'", tok.text)
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			done.span.End = tok.end
			out = appendTo(out, stack, done)
		case tokenAtom:
			atom := &sexp{atom: tok.text, span: ast.Span{Start: tok.start, End: tok.end}}
			out = appendTo(out, stack, atom)
		}
	}
	if len(stack) > 0 {
		return nil, errorAt(stack[len(stack)-1].span.Start, "unclosed '('")
	}
	return out, nil
}

func appendTo(out []*sexp, stack []*sexp, item *sexp) []*sexp {
	if len(stack) == 0 {
		return append(out, item)
	}
	parent := stack[len(stack)-1]
	parent.list = append(parent.list, item)
	return out
}
