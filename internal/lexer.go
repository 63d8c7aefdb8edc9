package internal

import (
	"strconv"
	"strings"
	"unicode"
)

var keywords = map[string]tokenType{
	"let":   tkLet,
	"fn":    tkFn,
	"if":    tkIf,
	"else":  tkElse,
	"while": tkWhile,
	"true":  tkTrue,
	"false": tkFalse,
	"for":   tkFor,
}

// lexer scans the source rune by rune. Identifiers may contain any Unicode
// letter or digit, so the source is decoded up front instead of being
// indexed by byte.
type lexer struct {
	state *interpreterState

	source  []rune
	start   int
	current int
	line    int
}

func newLexer(state *interpreterState) *lexer {
	return &lexer{
		state:  state,
		source: []rune(state.source),
		line:   1,
	}
}

func (l *lexer) scan() {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.state.tokens = append(l.state.tokens, token{token: tkEOF, line: l.line})
}

func (l *lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.emit(tkLeftParen, nil)
	case ')':
		l.emit(tkRightParen, nil)
	case '{':
		l.emit(tkLeftBrace, nil)
	case '}':
		l.emit(tkRightBrace, nil)
	case ',':
		l.emit(tkComma, nil)
	case ';':
		l.emit(tkSemicolon, nil)
	case '+':
		// A sign glued to a digit belongs to the numeric literal.
		if l.matchDigit() {
			l.number()
		} else {
			l.emit(tkPlus, nil)
		}
	case '-':
		if l.matchDigit() {
			l.number()
		} else {
			l.emit(tkMinus, nil)
		}
	case '*':
		if l.match('*') {
			l.advance()
			l.emit(tkPower, nil)
		} else {
			l.emit(tkStar, nil)
		}
	case '/':
		if l.match('/') {
			for !l.isAtEnd() && !l.match('\n') {
				l.advance()
			}
		} else {
			l.emit(tkSlash, nil)
		}
	case '=':
		if l.match('=') {
			l.advance()
			l.emit(tkEqualEqual, nil)
		} else {
			l.emit(tkEqual, nil)
		}
	case '!':
		if l.match('=') {
			l.advance()
			l.emit(tkBangEqual, nil)
		} else {
			l.emit(tkBang, nil)
		}
	case '<':
		if l.match('=') {
			l.advance()
			l.emit(tkLessEqual, nil)
		} else {
			l.emit(tkLess, nil)
		}
	case '>':
		if l.match('=') {
			l.advance()
			l.emit(tkGreaterEqual, nil)
		} else {
			l.emit(tkGreater, nil)
		}
	case '&':
		if l.match('&') {
			l.advance()
			l.emit(tkAnd, nil)
		} else {
			l.state.setError(errIllegalChar, l.line)
		}
	case '|':
		if l.match('|') {
			l.advance()
			l.emit(tkOr, nil)
		} else {
			l.state.setError(errIllegalChar, l.line)
		}

	// Whitespace is insignificant.
	case ' ', '\r', '\t':

	case '\n':
		l.line++

	case '"':
		l.string()

	default:
		if isDigit(c) {
			l.number()
		} else if isIdentStart(c) {
			l.identifier()
		} else {
			l.state.setError(errIllegalChar, l.line)
		}
	}
}

func (l *lexer) string() {
	var b strings.Builder
	for !l.isAtEnd() && !l.match('"') {
		c := l.advance()
		if c == '\\' && l.match('"') {
			c = l.advance()
		}
		if c == '\n' {
			l.line++
		}
		b.WriteRune(c)
	}

	if l.isAtEnd() {
		l.state.setError(errUnclosedString, l.line)
		return
	}

	// Consume ending "
	l.advance()

	l.emit(tkString, strVal(b.String()))
}

func (l *lexer) number() {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	isFloat := false
	if !l.isAtEnd() && l.match('.') {
		isFloat = true
		l.advance()
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := string(l.source[l.start:l.current])
	if isFloat {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			l.state.setError(errMalformedNumber, l.line)
			return
		}
		l.emit(tkFloat, floatVal(f))
		return
	}
	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		l.state.setError(errMalformedNumber, l.line)
		return
	}
	l.emit(tkInt, intVal(i))
}

func (l *lexer) identifier() {
	for !l.isAtEnd() && isIdentPart(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])
	if tk, ok := keywords[lexeme]; ok {
		l.emit(tk, nil)
		return
	}
	l.emit(tkIdentifier, nil)
}

func (l *lexer) advance() rune {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *lexer) peek() rune {
	return l.source[l.current]
}

func (l *lexer) match(c rune) bool {
	return !l.isAtEnd() && l.source[l.current] == c
}

func (l *lexer) matchDigit() bool {
	return !l.isAtEnd() && isDigit(l.source[l.current])
}

func (l *lexer) emit(tk tokenType, literal value) {
	l.state.tokens = append(l.state.tokens, token{
		token:   tk,
		lexeme:  string(l.source[l.start:l.current]),
		literal: literal,
		line:    l.line,
	})
}

func (l *lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}
