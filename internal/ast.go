package internal

// Every construct in the language is an expression; there is no statement
// node kind. The evaluator and the bytecode backend both dispatch on these
// variants with exhaustive type switches.
type expr interface {
	pos() *token
}

type literalExpr struct {
	token *token
	value value
}

func (e *literalExpr) pos() *token { return e.token }

type variableExpr struct {
	name *token
}

func (e *variableExpr) pos() *token { return e.name }

type letExpr struct {
	name *token
	init expr
}

func (e *letExpr) pos() *token { return e.name }

type assignExpr struct {
	name  *token
	value expr
}

func (e *assignExpr) pos() *token { return e.name }

type blockExpr struct {
	brace *token
	exprs []expr
}

func (e *blockExpr) pos() *token { return e.brace }

type ifExpr struct {
	keyword    *token
	cond       expr
	thenBranch expr
	elseBranch expr // nil when there is no else
}

func (e *ifExpr) pos() *token { return e.keyword }

type whileExpr struct {
	keyword *token
	cond    expr
	body    expr
}

func (e *whileExpr) pos() *token { return e.keyword }

// functionExpr covers both forms: with a name it is a definition that binds
// the closure in the surrounding scope and yields Unit, without a name it is
// a literal that yields the closure itself.
type functionExpr struct {
	keyword *token
	name    *token // nil for anonymous functions
	params  []*token
	body    expr
}

func (e *functionExpr) pos() *token { return e.keyword }

type callExpr struct {
	paren  *token
	callee expr
	args   []expr
}

func (e *callExpr) pos() *token { return e.paren }

type binaryExpr struct {
	operator *token
	left     expr
	right    expr
}

func (e *binaryExpr) pos() *token { return e.operator }

type unaryExpr struct {
	operator *token
	right    expr
}

func (e *unaryExpr) pos() *token { return e.operator }

type builtinExpr struct {
	name *token
	args []expr
}

func (e *builtinExpr) pos() *token { return e.name }
