package internal

// parser is a recursive descent parser over the token stream. Everything it
// produces is an expression; errors are collected into the shared state and
// the offending form is skipped.
type parser struct {
	current int

	state *interpreterState
}

func newParser(state *interpreterState) *parser {
	return &parser{state: state}
}

func (p *parser) parse() {
	for !p.isAtEnd() {
		ex := p.parseTopLevel()
		if ex != nil {
			p.state.exprs = append(p.state.exprs, ex)
		}
	}
}

func (p *parser) parseTopLevel() (ex expr) {
	defer func() {
		if r := recover(); r != nil {
			ex = nil
			p.synchronize()
		}
	}()
	return p.expression()
}

func (p *parser) expression() expr {
	switch p.peek().token {
	case tkLet:
		return p.let()
	case tkFn:
		return p.function()
	case tkIf:
		return p.ifExpression()
	case tkWhile:
		return p.while()
	case tkLeftParen:
		return p.call()
	case tkLeftBrace:
		return p.block()
	case tkIdentifier:
		if p.peekNext().token == tkEqual {
			return p.assignment()
		}
		return &variableExpr{name: p.advance()}
	case tkInt, tkFloat, tkString:
		tk := p.advance()
		return &literalExpr{token: tk, value: tk.literal}
	case tkTrue:
		return &literalExpr{token: p.advance(), value: boolVal(true)}
	case tkFalse:
		return &literalExpr{token: p.advance(), value: boolVal(false)}
	case tkFor:
		p.state.fatalError(errReservedKeyword, p.peek().line)
	case tkEOF:
		p.state.fatalError(errUnexpectedEOF, p.peek().line)
	}
	p.state.fatalError(errUnexpectedToken, p.peek().line)
	return nil
}

func (p *parser) let() expr {
	p.advance() // let
	name := p.consume(tkIdentifier, errExpectedIdentifier)
	p.consume(tkEqual, errExpectedEqual)
	return &letExpr{name: name, init: p.expression()}
}

func (p *parser) assignment() expr {
	name := p.advance()
	p.advance() // =
	return &assignExpr{name: name, value: p.expression()}
}

func (p *parser) function() expr {
	keyword := p.advance() // fn

	var name *token
	if p.check(tkIdentifier) {
		name = p.advance()
	}

	p.consume(tkLeftParen, errExpectedParen)

	var params []*token
	for !p.check(tkRightParen) {
		if p.check(tkComma) {
			p.advance()
			continue
		}
		if !p.check(tkIdentifier) {
			p.state.fatalError(errExpectedParameter, p.peek().line)
		}
		params = append(params, p.advance())
	}
	p.advance() // )

	return &functionExpr{
		keyword: keyword,
		name:    name,
		params:  params,
		body:    p.expression(),
	}
}

func (p *parser) ifExpression() expr {
	keyword := p.advance() // if
	cond := p.expression()
	thenBranch := p.expression()

	var elseBranch expr
	if p.check(tkElse) {
		p.advance()
		elseBranch = p.expression()
	}

	return &ifExpr{
		keyword:    keyword,
		cond:       cond,
		thenBranch: thenBranch,
		elseBranch: elseBranch,
	}
}

func (p *parser) while() expr {
	keyword := p.advance() // while
	return &whileExpr{
		keyword: keyword,
		cond:    p.expression(),
		body:    p.expression(),
	}
}

func (p *parser) block() expr {
	brace := p.advance() // {
	var exprs []expr
	for !p.check(tkRightBrace) {
		if p.check(tkEOF) {
			p.state.fatalError(errUnclosedBrace, p.peek().line)
		}
		exprs = append(exprs, p.expression())
	}
	p.advance() // }
	return &blockExpr{brace: brace, exprs: exprs}
}

// call parses every parenthesized form: operator folds, builtin calls and
// closure calls all share the (head arg...) shape.
func (p *parser) call() expr {
	paren := p.advance() // (

	if p.peek().token.isOperator() {
		return p.operatorCall()
	}
	if p.peek().token == tkBang {
		return p.bangCall()
	}

	var head expr
	var builtin *token
	if p.check(tkIdentifier) && isBuiltin(p.peek().lexeme) && p.peekNext().token != tkEqual {
		builtin = p.advance()
	} else {
		head = p.expression()
	}

	var args []expr
	for !p.check(tkRightParen) {
		if p.check(tkEOF) {
			p.state.fatalError(errUnclosedParen, p.peek().line)
		}
		if p.check(tkComma) {
			p.advance()
			continue
		}
		args = append(args, p.expression())
	}
	p.advance() // )

	if builtin != nil {
		return &builtinExpr{name: builtin, args: args}
	}
	return &callExpr{paren: paren, callee: head, args: args}
}

// operatorCall folds (op a b c ...) into left-nested binary nodes, so the
// moment a string operand appears every later combination stays textual.
func (p *parser) operatorCall() expr {
	operator := p.advance()

	var operands []expr
	for !p.check(tkRightParen) {
		if p.check(tkEOF) {
			p.state.fatalError(errUnclosedParen, p.peek().line)
		}
		operands = append(operands, p.expression())
	}
	p.advance() // )

	if len(operands) == 0 {
		p.state.fatalError(errOperatorArity, operator.line)
	}

	acc := operands[0]
	for _, operand := range operands[1:] {
		acc = &binaryExpr{operator: operator, left: acc, right: operand}
	}
	return acc
}

func (p *parser) bangCall() expr {
	operator := p.advance()

	var operands []expr
	for !p.check(tkRightParen) {
		if p.check(tkEOF) {
			p.state.fatalError(errUnclosedParen, p.peek().line)
		}
		operands = append(operands, p.expression())
	}
	p.advance() // )

	if len(operands) != 1 {
		p.state.fatalError(errBangArity, operator.line)
	}
	return &unaryExpr{operator: operator, right: operands[0]}
}

func (p *parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().token {
		case tkLet, tkFn, tkIf, tkWhile, tkLeftBrace:
			return
		}
		p.advance()
	}
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}
	p.state.fatalError(err, p.peek().line)
	return nil
}

func (p *parser) check(tk tokenType) bool {
	return p.peek().token == tk
}

func (p *parser) advance() *token {
	tk := &p.state.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) peekNext() *token {
	if p.current+1 >= len(p.state.tokens) {
		return &p.state.tokens[len(p.state.tokens)-1]
	}
	return &p.state.tokens[p.current+1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}
