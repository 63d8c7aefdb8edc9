package internal

import (
	"fmt"
	"io"
	"strings"
)

// printTree renders the parsed program as s-expressions, one top-level
// expression per line.
func printTree(w io.Writer, exprs []expr) {
	for _, ex := range exprs {
		fmt.Fprintln(w, astString(ex))
	}
}

func astString(node expr) string {
	switch n := node.(type) {
	case *literalExpr:
		if n.value.kind() == kindStr {
			return fmt.Sprintf("%q", n.value.String())
		}
		return n.value.String()
	case *variableExpr:
		return n.name.lexeme
	case *letExpr:
		return fmt.Sprintf("(let %s %s)", n.name.lexeme, astString(n.init))
	case *assignExpr:
		return fmt.Sprintf("(set %s %s)", n.name.lexeme, astString(n.value))
	case *blockExpr:
		out := "(scope"
		for _, ex := range n.exprs {
			out += " " + astString(ex)
		}
		return out + ")"
	case *ifExpr:
		out := fmt.Sprintf("(if %s %s", astString(n.cond), astString(n.thenBranch))
		if n.elseBranch != nil {
			out += fmt.Sprintf(" (else %s)", astString(n.elseBranch))
		}
		return out + ")"
	case *whileExpr:
		return fmt.Sprintf("(while %s %s)", astString(n.cond), astString(n.body))
	case *functionExpr:
		name := ""
		if n.name != nil {
			name = n.name.lexeme + " "
		}
		params := make([]string, len(n.params))
		for i, p := range n.params {
			params[i] = p.lexeme
		}
		return fmt.Sprintf("(fn %s(%s) %s)", name, strings.Join(params, " "), astString(n.body))
	case *callExpr:
		out := "(call " + astString(n.callee)
		for _, a := range n.args {
			out += " " + astString(a)
		}
		return out + ")"
	case *binaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.operator.lexeme, astString(n.left), astString(n.right))
	case *unaryExpr:
		return fmt.Sprintf("(%s %s)", n.operator.lexeme, astString(n.right))
	case *builtinExpr:
		out := "(" + n.name.lexeme
		for _, a := range n.args {
			out += " " + astString(a)
		}
		return out + ")"
	}
	return "?"
}
