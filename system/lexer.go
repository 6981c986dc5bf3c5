package system

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/bjonica/graphql/errors"
	"github.com/bjonica/graphql/system/token"
)

type syntaxError string

type lexer struct {
	scan *scanner.Scanner
	next rune
}

func newLexer(source string) *lexer {
	scan := &scanner.Scanner{
		Mode: scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings,
	}
	scan.Init(strings.NewReader(source))
	scan.Error = func(_ *scanner.Scanner, _ string) {}
	return &lexer{scan: scan}
}

// catchSyntaxError converts lexer panics into a located error value; the
// parser boundary never throws.
func (l *lexer) catchSyntaxError(fn func()) (graphQLError *errors.GraphQLError) {
	defer func() {
		if err := recover(); err != nil {
			if err, ok := err.(syntaxError); ok {
				graphQLError = errors.NewLocated(l.location(), "Syntax Error: %s", err)
				return
			}
			panic(err)
		}
	}()
	fn()
	return
}

func (l *lexer) peek() rune {
	return l.next
}

func (l *lexer) location() errors.Location {
	return errors.Location{
		Line:   l.scan.Line,
		Column: l.scan.Column,
	}
}

// skip whitespace, also tabs, commas, BOM and comments
func (l *lexer) skipWhitespace() {
	for {
		l.next = l.scan.Scan()
		if l.next == ',' {
			continue
		}
		if l.next == '#' {
			l.skipComment()
			continue
		}
		break
	}
}

func (l *lexer) skipComment() {
	for {
		next := l.scan.Next()
		if next == '\r' || next == '\n' || next == scanner.EOF {
			break
		}
	}
}

func (l *lexer) tokenText() string {
	text := l.scan.TokenText()
	text = strings.TrimPrefix(text, `"`)
	return strings.TrimSuffix(text, `"`)
}

// If the next token is of the given kind, advance and skip whitespace.
// Otherwise leave the lexer untouched and raise a syntax error.
func (l *lexer) advance(expected rune) {
	if l.next != expected {
		l.SyntaxError(fmt.Sprintf(`Expected %s, found %q.`, scanner.TokenString(expected), l.tokenText()))
	}
	l.skipWhitespace()
}

func (l *lexer) advanceKeyWord(keyword string) {
	if l.next != token.NAME || l.scan.TokenText() != keyword {
		l.SyntaxError(fmt.Sprintf(`Expected "%s", found %q.`, keyword, l.tokenText()))
	}
	l.skipWhitespace()
}

func (l *lexer) SyntaxError(message string) {
	panic(syntaxError(message))
}
