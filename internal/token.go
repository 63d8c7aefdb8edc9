package internal

type tokenType int

const (
	tkEOF tokenType = iota - 1

	// Punctuation.
	// (, ), {, }, ',', ;
	tkLeftParen
	tkRightParen
	tkLeftBrace
	tkRightBrace
	tkComma
	tkSemicolon

	// Operators.
	// =, +, -, *, /, **, ==, !=, <, <=, >, >=, &&, ||, !
	tkEqual
	tkPlus
	tkMinus
	tkStar
	tkSlash
	tkPower
	tkEqualEqual
	tkBangEqual
	tkLess
	tkLessEqual
	tkGreater
	tkGreaterEqual
	tkAnd
	tkOr
	tkBang

	// Literals.
	// *identifier*, string, int, float
	tkIdentifier
	tkString
	tkInt
	tkFloat

	// Keywords.
	// let, fn, if, else, while, true, false, for
	tkLet
	tkFn
	tkIf
	tkElse
	tkWhile
	tkTrue
	tkFalse
	tkFor
)

type token struct {
	token   tokenType
	lexeme  string
	literal value
	line    int
}

// isOperator reports whether the token can sit in the head position of an
// operator call like (+ 1 2).
func (t tokenType) isOperator() bool {
	switch t {
	case tkPlus, tkMinus, tkStar, tkSlash, tkPower,
		tkEqualEqual, tkBangEqual,
		tkLess, tkLessEqual, tkGreater, tkGreaterEqual,
		tkAnd, tkOr:
		return true
	}
	return false
}
