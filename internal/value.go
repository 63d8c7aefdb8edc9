package internal

import (
	"fmt"
	"strconv"
)

type valueKind int

const (
	kindInt valueKind = iota
	kindFloat
	kindStr
	kindBool
	kindUnit
	kindClosure
)

func (k valueKind) String() string {
	switch k {
	case kindInt:
		return "Int"
	case kindFloat:
		return "Float"
	case kindStr:
		return "Str"
	case kindBool:
		return "Bool"
	case kindUnit:
		return "Unit"
	case kindClosure:
		return "Closure"
	}
	return "Unknown"
}

// value is the runtime representation of every expression result. Values are
// immutable; rebinding a variable swaps which value the binding holds.
type value interface {
	kind() valueKind
	// String is the canonical text form used by print and by string
	// coercion in the operator engine.
	String() string
	// debugString is the tagged form written by dbg.
	debugString() string
}

type intVal int64

func (v intVal) kind() valueKind     { return kindInt }
func (v intVal) String() string      { return strconv.FormatInt(int64(v), 10) }
func (v intVal) debugString() string { return fmt.Sprintf("Int(%d)", int64(v)) }

type floatVal float64

func (v floatVal) kind() valueKind { return kindFloat }
func (v floatVal) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}
func (v floatVal) debugString() string { return fmt.Sprintf("Float(%s)", v.String()) }

type strVal string

func (v strVal) kind() valueKind     { return kindStr }
func (v strVal) String() string      { return string(v) }
func (v strVal) debugString() string { return fmt.Sprintf("Str(%s)", strconv.Quote(string(v))) }

type boolVal bool

func (v boolVal) kind() valueKind { return kindBool }
func (v boolVal) String() string {
	if v {
		return "true"
	}
	return "false"
}
func (v boolVal) debugString() string { return fmt.Sprintf("Bool(%s)", v.String()) }

type unitVal struct{}

func (v unitVal) kind() valueKind     { return kindUnit }
func (v unitVal) String() string      { return "()" }
func (v unitVal) debugString() string { return "Unit" }

var unit = unitVal{}

const anonymousFnName = "*anonymous*"

// closure pairs a function literal with the environment that was active at
// its definition. The environment is shared, not copied, so calls observe
// mutations made after the definition point.
type closure struct {
	name   string
	params []*token
	body   expr
	env    *env
}

func (c *closure) kind() valueKind     { return kindClosure }
func (c *closure) String() string      { return "fn " + c.name }
func (c *closure) debugString() string { return fmt.Sprintf("Closure(fn %s/%d)", c.name, len(c.params)) }

func (c *closure) arity() int { return len(c.params) }
