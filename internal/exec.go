package internal

// maxCallDepth bounds recursion so runaway programs fail with a stack
// overflow diagnostic instead of exhausting the host stack.
const maxCallDepth = 8192

type exec struct {
	state   *interpreterState
	console *Console

	globals *env
	env     *env
	depth   int
}

func newExec(state *interpreterState, console *Console, globals *env) *exec {
	return &exec{
		state:   state,
		console: console,
		globals: globals,
		env:     globals,
	}
}

// interpret evaluates the top-level expression sequence. Runtime errors
// unwind through a panic raised by state.runtimeErr; they are recovered
// here and reported on the console's error stream.
func (e *exec) interpret() bool {
	defer func() {
		if r := recover(); r != nil {
			if _, isRuntime := r.(*runtimeError); !isRuntime {
				panic(r)
			}
			e.state.printRuntimeError(e.console.Stderr)
		}
	}()
	for _, ex := range e.state.exprs {
		e.eval(ex)
	}
	return e.state.runtime == nil
}

// eval dispatches on the node kind. The switch is exhaustive over the AST
// variants; the parser cannot produce anything else.
func (e *exec) eval(node expr) value {
	switch n := node.(type) {
	case *literalExpr:
		return n.value
	case *variableExpr:
		return e.lookup(n.name)
	case *letExpr:
		e.env.define(n.name.lexeme, e.eval(n.init))
		return unit
	case *assignExpr:
		v := e.eval(n.value)
		if !e.env.assign(n.name.lexeme, v) {
			e.state.runtimeErr(errUndefinedVar, n.name)
		}
		return unit
	case *blockExpr:
		return e.evalBlock(n)
	case *ifExpr:
		return e.evalIf(n)
	case *whileExpr:
		return e.evalWhile(n)
	case *functionExpr:
		return e.evalFunction(n)
	case *callExpr:
		return e.evalCall(n)
	case *binaryExpr:
		return e.evalBinary(n)
	case *unaryExpr:
		return e.evalUnary(n)
	case *builtinExpr:
		return e.evalBuiltin(n)
	}
	return unit
}

func (e *exec) lookup(name *token) value {
	v, ok := e.env.get(name.lexeme)
	if !ok {
		e.state.runtimeErr(errUndefinedVar, name)
	}
	return v
}

// evalBlock runs the sequence in a fresh child scope. The block's value is
// the value of its last expression, Unit when empty.
func (e *exec) evalBlock(n *blockExpr) value {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = newEnv(previous)

	var result value = unit
	for _, ex := range n.exprs {
		result = e.eval(ex)
	}
	return result
}

func (e *exec) evalIf(n *ifExpr) value {
	if e.condition(n.cond, n.keyword) {
		return e.eval(n.thenBranch)
	}
	if n.elseBranch != nil {
		return e.eval(n.elseBranch)
	}
	return unit
}

func (e *exec) evalWhile(n *whileExpr) value {
	for e.condition(n.cond, n.keyword) {
		e.eval(n.body)
	}
	return unit
}

// condition evaluates a guard expression. Only Bool is accepted; there is
// no truthy coercion for other kinds.
func (e *exec) condition(cond expr, keyword *token) bool {
	v := e.eval(cond)
	b, ok := v.(boolVal)
	if !ok {
		e.state.runtimeErr(errTypeMismatch, keyword)
	}
	return bool(b)
}

// evalFunction builds a closure over the current scope. A named function
// captures an extra scope holding its own name, so the body can recurse
// even if the outer binding is later reassigned; the name is also defined
// in the surrounding scope and the definition yields Unit.
func (e *exec) evalFunction(n *functionExpr) value {
	if n.name == nil {
		return &closure{
			name:   anonymousFnName,
			params: n.params,
			body:   n.body,
			env:    e.env,
		}
	}

	fnScope := newEnv(e.env)
	cl := &closure{
		name:   n.name.lexeme,
		params: n.params,
		body:   n.body,
		env:    fnScope,
	}
	fnScope.define(n.name.lexeme, cl)
	e.env.define(n.name.lexeme, cl)
	return unit
}

func (e *exec) evalCall(n *callExpr) value {
	callee := e.eval(n.callee)

	args := make([]value, len(n.args))
	for i := range n.args {
		args[i] = e.eval(n.args[i])
	}

	cl, isClosure := callee.(*closure)
	if !isClosure {
		e.state.runtimeErr(errNotCallable, n.paren)
	}
	if len(args) != cl.arity() {
		e.state.runtimeErr(errArityMismatch, n.paren)
	}

	if e.depth >= maxCallDepth {
		e.state.runtimeErr(errStackOverflow, n.paren)
	}
	e.depth++

	callScope := newEnv(cl.env)
	for i, param := range cl.params {
		callScope.define(param.lexeme, args[i])
	}

	previous := e.env
	defer func() {
		e.env = previous
		e.depth--
	}()
	e.env = callScope

	return e.eval(cl.body)
}

func (e *exec) evalBinary(n *binaryExpr) value {
	left := e.eval(n.left)
	right := e.eval(n.right)

	result, err := applyBinary(n.operator.token, left, right)
	if err != nil {
		e.state.runtimeErr(err, n.operator)
	}
	return result
}

func (e *exec) evalUnary(n *unaryExpr) value {
	operand := e.eval(n.right)

	result, err := applyUnary(n.operator.token, operand)
	if err != nil {
		e.state.runtimeErr(err, n.operator)
	}
	return result
}

func (e *exec) evalBuiltin(n *builtinExpr) value {
	args := make([]value, len(n.args))
	for i := range n.args {
		args[i] = e.eval(n.args[i])
	}
	return builtins[n.name.lexeme](e, n.name, args)
}
