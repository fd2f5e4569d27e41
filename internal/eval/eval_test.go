package eval

import (
	"testing"

	"github.com/robert-at-pretension-io/vlint/internal/ast"
)

func ident(name string) ast.Expression { return ast.Expression{Kind: ast.ExprIdentifier, Name: name} }
func num(text string) ast.Expression   { return ast.Expression{Kind: ast.ExprNumber, Text: text} }

func binary(arena *ast.Arena, op string, l, r ast.Expression) ast.Expression {
	return ast.Expression{Kind: ast.ExprBinary, Binary: arena.NewBinaryExpression(op, l, r)}
}

func TestIdentifierResolutionOrder(t *testing.T) {
	env := &Env{Params: map[string]uint64{"WIDTH": 8}, Signals: map[string]uint32{"a": 4}}

	r, _ := Evaluate(env, ident("WIDTH"))
	if !r.HasValue || r.Value != 8 || r.Width != 32 {
		t.Fatalf("param lookup: got %+v", r)
	}

	r, _ = Evaluate(env, ident("a"))
	if r.HasValue || r.Width != 4 {
		t.Fatalf("signal lookup: got %+v", r)
	}

	r, _ = Evaluate(env, ident("unknown"))
	if r.HasValue || r.Width != 32 {
		t.Fatalf("unknown identifier: got %+v", r)
	}
}

func TestAdditionWidthAndFold(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{Params: map[string]uint64{}, Signals: map[string]uint32{}}
	expr := binary(arena, "+", num("4'd3"), num("4'd5"))

	r, overflows := Evaluate(env, expr)
	if len(overflows) != 0 {
		t.Fatalf("unexpected overflow: %+v", overflows)
	}
	if !r.HasValue || r.Value != 8 || r.Width != 5 {
		t.Fatalf("got %+v", r)
	}
}

func TestAdditionOverflowDetected(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{}
	expr := binary(arena, "+", num("8'hFF"), num("8'h02"))

	r, overflows := Evaluate(env, expr)
	if len(overflows) != 1 || overflows[0].Left != 255 || overflows[0].Right != 2 {
		t.Fatalf("got overflows=%+v", overflows)
	}
	if !r.HasValue || r.Width != 9 {
		t.Fatalf("got %+v", r)
	}
}

func TestMultiplicationWidthIsSumOfOperands(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{Signals: map[string]uint32{"a": 4, "b": 4}}
	expr := binary(arena, "*", ident("a"), ident("b"))
	r, _ := Evaluate(env, expr)
	if r.HasValue || r.Width != 8 {
		t.Fatalf("got %+v", r)
	}
}

func TestComparisonWidthIsOne(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{Signals: map[string]uint32{"a": 8, "b": 4}}
	expr := binary(arena, "==", ident("a"), ident("b"))
	r, _ := Evaluate(env, expr)
	if r.Width != 1 {
		t.Fatalf("got %+v", r)
	}
}

func TestSubtractionWrapsTwosComplement(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{}
	expr := binary(arena, "-", num("2'd0"), num("2'd1"))
	r, _ := Evaluate(env, expr)
	// result width = max(2,2)+1 = 3; (0-1)&0b111 = 7
	if !r.HasValue || r.Value != 7 || r.Width != 3 {
		t.Fatalf("got %+v", r)
	}
}

func TestNonConstantSideYieldsUnknown(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{Signals: map[string]uint32{"a": 8}}
	expr := binary(arena, "+", ident("a"), num("8'h01"))
	r, _ := Evaluate(env, expr)
	if r.HasValue {
		t.Fatalf("expected non-constant result, got %+v", r)
	}
	if r.Width != 9 {
		t.Fatalf("width: got %+v", r)
	}
}

func TestBitwiseAndDivideKeepOperandWidth(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{Signals: map[string]uint32{"a": 4, "b": 8}}
	for _, op := range []string{"&", "|", "^", "/"} {
		expr := binary(arena, op, ident("a"), ident("b"))
		r, _ := Evaluate(env, expr)
		if r.Width != 8 {
			t.Fatalf("op %q: got width %d, want 8", op, r.Width)
		}
	}
}

func TestNestedOverflowsPropagateInOrder(t *testing.T) {
	arena := ast.NewArena()
	env := &Env{}
	inner := binary(arena, "+", num("8'hFF"), num("8'h01"))
	outer := binary(arena, "-", inner, num("4'd1"))
	_, overflows := Evaluate(env, outer)
	if len(overflows) != 1 || overflows[0].Left != 255 || overflows[0].Right != 1 {
		t.Fatalf("got %+v", overflows)
	}
}
