package source

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind discriminates lexical token categories
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenNumber
	TokenString
	TokenChar
	TokenSymbol
	TokenEOF
)

// Token is one lexical token with its source line
type Token struct {
	Kind TokenKind
	Text string
	Line int
}

// lexer tokenizes Java source at the granularity the declaration parser
// needs: identifiers, literals, and single-character symbols. Comments are
// discarded. Multi-character operators are emitted as individual symbol
// tokens; the parser only ever counts and skips them.
type lexer struct {
	src  []byte
	pos  int
	line int
}

// Lex tokenizes an entire source file. The returned slice always ends with
// a TokenEOF token.
func Lex(src []byte) ([]Token, error) {
	l := &lexer{src: src, line: 1}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return Token{}, err
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Line: l.line}, nil
	}

	start := l.pos
	line := l.line
	r, size := l.rune()

	switch {
	case isIdentStart(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size := l.rune()
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		return Token{Kind: TokenIdent, Text: string(l.src[start:l.pos]), Line: line}, nil

	case r >= '0' && r <= '9':
		l.lexNumber()
		return Token{Kind: TokenNumber, Text: string(l.src[start:l.pos]), Line: line}, nil

	case r == '"':
		text, err := l.lexString()
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenString, Text: text, Line: line}, nil

	case r == '\'':
		if err := l.lexChar(); err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenChar, Text: string(l.src[start:l.pos]), Line: line}, nil

	default:
		l.pos += size
		return Token{Kind: TokenSymbol, Text: string(r), Line: line}, nil
	}
}

func (l *lexer) rune() (rune, int) {
	return utf8.DecodeRune(l.src[l.pos:])
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			openLine := l.line
			l.pos += 2
			closed := false
			for l.pos < len(l.src) {
				if l.src[l.pos] == '\n' {
					l.line++
				}
				if l.src[l.pos] == '*' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
					l.pos += 2
					closed = true
					break
				}
				l.pos++
			}
			if !closed {
				return fmt.Errorf("line %d: unterminated block comment", openLine)
			}
		default:
			return nil
		}
	}
	return nil
}

// lexNumber consumes a numeric literal greedily: digits, hex/binary letters,
// underscores, decimal points, and exponent signs. Numeric literals only
// appear inside initializers and annotation arguments, which the parser
// skips, so the exact shape does not matter as long as the literal is
// consumed atomically.
func (l *lexer) lexNumber() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.' {
			l.pos++
			continue
		}
		// Exponent sign: 1e-5, 0x1p+3
		if (c == '+' || c == '-') && l.pos > 0 {
			prev := l.src[l.pos-1]
			if prev == 'e' || prev == 'E' || prev == 'p' || prev == 'P' {
				l.pos++
				continue
			}
		}
		break
	}
}

// lexString consumes a string literal or a """ text block, returning its
// contents without quotes.
func (l *lexer) lexString() (string, error) {
	startLine := l.line

	// Text block: three quotes, runs until the next three quotes
	if l.pos+2 < len(l.src) && l.src[l.pos+1] == '"' && l.src[l.pos+2] == '"' {
		l.pos += 3
		start := l.pos
		for l.pos+2 < len(l.src) {
			if l.src[l.pos] == '\n' {
				l.line++
			}
			if l.src[l.pos] == '"' && l.src[l.pos+1] == '"' && l.src[l.pos+2] == '"' {
				text := string(l.src[start:l.pos])
				l.pos += 3
				return text, nil
			}
			if l.src[l.pos] == '\\' {
				l.pos++
			}
			l.pos++
		}
		return "", fmt.Errorf("line %d: unterminated text block", startLine)
	}

	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '"':
			text := string(l.src[start:l.pos])
			l.pos++
			return text, nil
		case '\\':
			l.pos += 2
		case '\n':
			return "", fmt.Errorf("line %d: unterminated string literal", startLine)
		default:
			l.pos++
		}
	}
	return "", fmt.Errorf("line %d: unterminated string literal", startLine)
}

func (l *lexer) lexChar() error {
	startLine := l.line
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '\'':
			l.pos++
			return nil
		case '\\':
			l.pos += 2
		case '\n':
			return fmt.Errorf("line %d: unterminated character literal", startLine)
		default:
			l.pos++
		}
	}
	return fmt.Errorf("line %d: unterminated character literal", startLine)
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
