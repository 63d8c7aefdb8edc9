package internal

import "math"

// The coercion engine. Operand kinds promote along Int < Float < Str: a
// Float operand widens Int arithmetic, a Str operand turns + into
// concatenation and ordering into lexicographic comparison of the
// stringified forms. Bool and Unit never coerce; they only take part in
// same-kind equality.

func applyBinary(op tokenType, left, right value) (value, error) {
	switch op {
	case tkPlus:
		return applyAdd(left, right)
	case tkMinus, tkStar, tkSlash, tkPower:
		return applyArithmetic(op, left, right)
	case tkLess, tkLessEqual, tkGreater, tkGreaterEqual:
		return applyOrdering(op, left, right)
	case tkEqualEqual:
		eq, err := structuralEq(left, right)
		if err != nil {
			return nil, err
		}
		return boolVal(eq), nil
	case tkBangEqual:
		eq, err := structuralEq(left, right)
		if err != nil {
			return nil, err
		}
		return boolVal(!eq), nil
	case tkAnd, tkOr:
		return applyLogical(op, left, right)
	}
	return nil, errTypeMismatch
}

func applyUnary(op tokenType, operand value) (value, error) {
	if op == tkBang {
		if b, ok := operand.(boolVal); ok {
			return boolVal(!b), nil
		}
	}
	return nil, errTypeMismatch
}

// applyAdd is the only operator where Str participates in arithmetic: the
// non-string operand is stringified and the result is concatenation.
func applyAdd(left, right value) (value, error) {
	lk, rk := left.kind(), right.kind()
	if lk == kindStr || rk == kindStr {
		if !stringCoercible(lk) || !stringCoercible(rk) {
			return nil, errTypeMismatch
		}
		return strVal(left.String() + right.String()), nil
	}
	if lk == kindInt && rk == kindInt {
		return left.(intVal) + right.(intVal), nil
	}
	if isNumeric(lk) && isNumeric(rk) {
		return floatVal(toFloat(left) + toFloat(right)), nil
	}
	return nil, errTypeMismatch
}

func applyArithmetic(op tokenType, left, right value) (value, error) {
	lk, rk := left.kind(), right.kind()
	if !isNumeric(lk) || !isNumeric(rk) {
		return nil, errTypeMismatch
	}

	if lk == kindInt && rk == kindInt {
		l, r := left.(intVal), right.(intVal)
		switch op {
		case tkMinus:
			return l - r, nil
		case tkStar:
			return l * r, nil
		case tkSlash:
			if r == 0 {
				return nil, errDivisionByZero
			}
			return l / r, nil
		case tkPower:
			if r >= 0 {
				return intPow(l, r), nil
			}
			// Negative exponents leave the integers.
			return floatVal(math.Pow(float64(l), float64(r))), nil
		}
	}

	l, r := toFloat(left), toFloat(right)
	switch op {
	case tkMinus:
		return floatVal(l - r), nil
	case tkStar:
		return floatVal(l * r), nil
	case tkSlash:
		// Float division by zero follows IEEE-754: Inf or NaN, no error.
		return floatVal(l / r), nil
	case tkPower:
		return floatVal(math.Pow(l, r)), nil
	}
	return nil, errTypeMismatch
}

func applyOrdering(op tokenType, left, right value) (value, error) {
	lk, rk := left.kind(), right.kind()

	if lk == kindStr || rk == kindStr {
		if !stringCoercible(lk) || !stringCoercible(rk) {
			return nil, errTypeMismatch
		}
		return orderingResult(op, compareStrings(left.String(), right.String())), nil
	}

	if !isNumeric(lk) || !isNumeric(rk) {
		return nil, errTypeMismatch
	}
	if lk == kindInt && rk == kindInt {
		return orderingResult(op, compareInts(int64(left.(intVal)), int64(right.(intVal)))), nil
	}
	return orderingResult(op, compareFloats(toFloat(left), toFloat(right))), nil
}

// structuralEq implements ==. Closures are never equal, not even to
// themselves; Unit and Bool require a same-kind partner.
func structuralEq(left, right value) (bool, error) {
	lk, rk := left.kind(), right.kind()

	if lk == kindClosure || rk == kindClosure {
		return false, nil
	}
	if lk == kindUnit || rk == kindUnit {
		if lk != rk {
			return false, errTypeMismatch
		}
		return true, nil
	}
	if lk == kindBool || rk == kindBool {
		if lk != rk {
			return false, errTypeMismatch
		}
		return left.(boolVal) == right.(boolVal), nil
	}
	if lk == kindStr || rk == kindStr {
		return left.String() == right.String(), nil
	}
	if lk == kindInt && rk == kindInt {
		return left.(intVal) == right.(intVal), nil
	}
	return toFloat(left) == toFloat(right), nil
}

func applyLogical(op tokenType, left, right value) (value, error) {
	l, lok := left.(boolVal)
	r, rok := right.(boolVal)
	if !lok || !rok {
		return nil, errTypeMismatch
	}
	if op == tkAnd {
		return l && r, nil
	}
	return l || r, nil
}

func isNumeric(k valueKind) bool {
	return k == kindInt || k == kindFloat
}

func stringCoercible(k valueKind) bool {
	return k == kindInt || k == kindFloat || k == kindStr
}

func toFloat(v value) float64 {
	switch n := v.(type) {
	case intVal:
		return float64(n)
	case floatVal:
		return float64(n)
	}
	return math.NaN()
}

func compareInts(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func compareFloats(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func compareStrings(l, r string) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func orderingResult(op tokenType, cmp int) boolVal {
	switch op {
	case tkLess:
		return cmp < 0
	case tkLessEqual:
		return cmp <= 0
	case tkGreater:
		return cmp > 0
	case tkGreaterEqual:
		return cmp >= 0
	}
	return false
}

func intPow(base, exp intVal) intVal {
	result := intVal(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
