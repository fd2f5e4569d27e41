// Package eval statically evaluates AST expressions: for any node it
// computes a bit width (always present) and, when every leaf folds, a
// constant value. It implements spec.md §4.5's width-promotion table and
// constant folding for `+`/`-`. It has no knowledge of violations; the
// caller (internal/lint) turns any Overflow this package reports into a
// violation string, keeping this package a pure function of an
// expression and an environment.
package eval

import (
	"github.com/robert-at-pretension-io/vlint/internal/ast"
	"github.com/robert-at-pretension-io/vlint/internal/numlit"
)

// Env is the parameter/signal environment an expression is evaluated
// under.
type Env struct {
	Params  map[string]uint64
	Signals map[string]uint32
}

// Result is the outcome of evaluating one expression node.
type Result struct {
	Value    uint64
	HasValue bool
	Width    uint32
}

// Overflow records a constant-addition overflow discovered while folding
// a BinaryExpression. lv/rv are the two folded operand values, in the
// order they add.
type Overflow struct {
	Left  uint64
	Right uint64
}

// Evaluate computes the Result for e under env, along with any constant
// overflows discovered while folding e's subexpressions, deepest first —
// the order they were computed in, matching the order the reference
// evaluator would append them to a single violation list.
func Evaluate(env *Env, e ast.Expression) (Result, []Overflow) {
	switch e.Kind {
	case ast.ExprIdentifier:
		return evaluateIdentifier(env, e.Name), nil
	case ast.ExprNumber:
		return evaluateNumber(e.Text), nil
	case ast.ExprBinary:
		return evaluateBinary(env, e.Binary)
	default:
		return Result{Width: 32}, nil
	}
}

func evaluateIdentifier(env *Env, name string) Result {
	if v, ok := env.Params[name]; ok {
		return Result{Value: v, HasValue: true, Width: 32}
	}
	if w, ok := env.Signals[name]; ok {
		return Result{Width: w}
	}
	return Result{Width: 32}
}

func evaluateNumber(text string) Result {
	r, ok := numlit.Parse(text)
	if !ok {
		return Result{Width: 32}
	}
	return Result{Value: r.Value, HasValue: true, Width: r.Width}
}

func evaluateBinary(env *Env, b *ast.BinaryExpression) (Result, []Overflow) {
	left, leftOv := Evaluate(env, b.Left)
	right, rightOv := Evaluate(env, b.Right)
	overflows := append(leftOv, rightOv...)

	operandWidth := left.Width
	if right.Width > operandWidth {
		operandWidth = right.Width
	}
	resultWidth := resultWidthFor(b.Op, left.Width, right.Width, operandWidth)

	if !left.HasValue || !right.HasValue {
		return Result{Width: resultWidth}, overflows
	}

	switch b.Op {
	case "+":
		maxValue := maxUintForWidth(operandWidth)
		if left.Value > maxValue-right.Value {
			overflows = append(overflows, Overflow{Left: left.Value, Right: right.Value})
		}
		sum := (left.Value + right.Value) & maskForWidth(resultWidth)
		return Result{Value: sum, HasValue: true, Width: resultWidth}, overflows
	case "-":
		diff := (left.Value - right.Value) & maskForWidth(resultWidth)
		return Result{Value: diff, HasValue: true, Width: resultWidth}, overflows
	default:
		return Result{Width: resultWidth}, overflows
	}
}

func resultWidthFor(op string, lw, rw, operandWidth uint32) uint32 {
	switch op {
	case "+", "-":
		return operandWidth + 1
	case "*":
		return lw + rw
	case "<<", ">>":
		return lw
	case "==", "!=", ">=", "<=", ">", "<", "&&", "||":
		return 1
	default: // "&", "|", "^", "/"
		return operandWidth
	}
}

func maxUintForWidth(width uint32) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func maskForWidth(width uint32) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
