package internal

// env is one scope in the lexical chain. Scopes are shared by pointer:
// every closure created in a scope sees mutations made to it later, which
// is what makes captured counters work across calls.
type env struct {
	enclosing *env
	values    map[string]value
}

func newEnv(enclosing *env) *env {
	return &env{
		enclosing: enclosing,
		values:    make(map[string]value),
	}
}

// get searches the current scope and then the parents outward.
func (e *env) get(name string) (value, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	return nil, false
}

// define inserts or overwrites a binding in the current scope. Declaring
// the same name twice replaces the binding cell.
func (e *env) define(name string, v value) {
	e.values[name] = v
}

// assign mutates the nearest existing binding found walking outward.
// It never creates a binding; assignment to an undeclared name is the
// caller's error to raise.
func (e *env) assign(name string, v value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = v
		return true
	}
	if e.enclosing != nil {
		return e.enclosing.assign(name, v)
	}
	return false
}
