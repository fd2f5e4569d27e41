// Package parser is a single-token-lookahead recursive-descent parser
// that consumes internal/lexer's token stream and builds an
// internal/ast.Module, allocating every recursive node from one
// internal/ast.Arena. Any grammar mismatch is fatal: Parse returns a
// *SyntaxError and stops immediately, per spec.md §4.3's "no error
// recovery" contract.
package parser

import (
	"fmt"

	"github.com/robert-at-pretension-io/vlint/internal/ast"
	"github.com/robert-at-pretension-io/vlint/internal/lexer"
)

// SyntaxError is the one error type Parse ever returns. Its Error text
// is exactly the one-line diagnostic spec.md §7 mandates.
type SyntaxError struct {
	msg string
}

func (e *SyntaxError) Error() string { return e.msg }

func expectedGotError(expected, got string) *SyntaxError {
	return &SyntaxError{msg: fmt.Sprintf("Syntax Error: Expected '%s' but got '%s'", expected, got)}
}

func statementError(got string) *SyntaxError {
	return &SyntaxError{msg: fmt.Sprintf("Syntax Error in Statement: %s", got)}
}

// Parser holds one token of lookahead over a lexer.Lexer and the arena
// every recursive node it produces is allocated from.
type Parser struct {
	lex   *lexer.Lexer
	arena *ast.Arena
	cur   lexer.Token
}

// Parse tokenizes and parses src as one Verilog module, allocating its
// AST from arena. arena must outlive the returned Module.
func Parse(src string, arena *ast.Arena) (*ast.Module, error) {
	p := &Parser{lex: lexer.New(src), arena: arena}
	p.advance()
	return p.parseModuleDefinition()
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
}

// match consumes the current token and returns true if it has the given
// kind and (when non-empty) text. content == "" matches any text.
func (p *Parser) match(kind lexer.Kind, content string) bool {
	if p.cur.Kind == kind && (content == "" || p.cur.Text == content) {
		p.advance()
		return true
	}
	return false
}

// expect behaves like match but returns a fatal *SyntaxError on mismatch.
func (p *Parser) expect(kind lexer.Kind, content string) error {
	if p.match(kind, content) {
		return nil
	}
	expected := content
	if expected == "" {
		expected = kind.String()
	}
	return expectedGotError(expected, p.cur.Text)
}

// ---------------------------------------------------------------------
// Module grammar
// ---------------------------------------------------------------------

func (p *Parser) parseModuleDefinition() (*ast.Module, error) {
	if err := p.expect(lexer.Keyword, "module"); err != nil {
		return nil, err
	}

	name := p.cur.Text
	if err := p.expect(lexer.Identifier, ""); err != nil {
		return nil, err
	}

	var params []ast.Parameter
	if p.match(lexer.Symbol, "#") {
		if err := p.expect(lexer.Symbol, "("); err != nil {
			return nil, err
		}
		for p.cur.Kind == lexer.Keyword && p.cur.Text == "parameter" {
			param, err := p.parseParameterDecl()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			p.match(lexer.Symbol, ",")
		}
		if err := p.expect(lexer.Symbol, ")"); err != nil {
			return nil, err
		}
	}

	var ports []ast.Port
	if err := p.expect(lexer.Symbol, "("); err != nil {
		return nil, err
	}
	for !(p.cur.Kind == lexer.Symbol && p.cur.Text == ")") {
		port, err := p.parsePortDecl()
		if err != nil {
			return nil, err
		}
		ports = append(ports, port)
		p.match(lexer.Symbol, ",")
	}
	if err := p.expect(lexer.Symbol, ")"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Symbol, ";"); err != nil {
		return nil, err
	}

	var items []ast.ModuleItem
	for !(p.cur.Kind == lexer.Keyword && p.cur.Text == "endmodule") {
		// A body-level `parameter NAME = expr;` joins the module's
		// parameter list, the same as one declared in the `#( ... )` header.
		if p.cur.Kind == lexer.Keyword && p.cur.Text == "parameter" {
			param, err := p.parseParameterDecl()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.Symbol, ";"); err != nil {
				return nil, err
			}
			params = append(params, param)
			continue
		}
		item, err := p.parseModuleItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := p.expect(lexer.Keyword, "endmodule"); err != nil {
		return nil, err
	}

	return &ast.Module{Name: name, Parameters: params, Ports: ports, Items: items}, nil
}

func (p *Parser) parseParameterDecl() (ast.Parameter, error) {
	p.advance() // consume 'parameter'
	name := p.cur.Text
	if err := p.expect(lexer.Identifier, ""); err != nil {
		return ast.Parameter{}, err
	}
	if err := p.expect(lexer.Symbol, "="); err != nil {
		return ast.Parameter{}, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return ast.Parameter{}, err
	}
	return ast.Parameter{Name: name, Default: value}, nil
}

func (p *Parser) parsePortDecl() (ast.Port, error) {
	dir := ast.DirInput
	switch {
	case p.match(lexer.Keyword, "input"):
		dir = ast.DirInput
	case p.match(lexer.Keyword, "output"):
		dir = ast.DirOutput
	case p.match(lexer.Keyword, "inout"):
		dir = ast.DirInOut
	}

	isReg := p.match(lexer.Keyword, "reg")

	var rng *ast.BitRange
	if p.match(lexer.Symbol, "[") {
		r, err := p.parseBitRange()
		if err != nil {
			return ast.Port{}, err
		}
		rng = &r
	}

	name := p.cur.Text
	if err := p.expect(lexer.Identifier, ""); err != nil {
		return ast.Port{}, err
	}

	return ast.Port{Direction: dir, IsRegister: isReg, Range: rng, Name: name}, nil
}

// parseBitRange consumes `msb : lsb ]`; the leading `[` has already been
// matched by the caller.
func (p *Parser) parseBitRange() (ast.BitRange, error) {
	msb, err := p.parseExpression()
	if err != nil {
		return ast.BitRange{}, err
	}
	if err := p.expect(lexer.Symbol, ":"); err != nil {
		return ast.BitRange{}, err
	}
	lsb, err := p.parseExpression()
	if err != nil {
		return ast.BitRange{}, err
	}
	if err := p.expect(lexer.Symbol, "]"); err != nil {
		return ast.BitRange{}, err
	}
	return ast.BitRange{MSB: msb, LSB: lsb}, nil
}

// ---------------------------------------------------------------------
// Module items
// ---------------------------------------------------------------------

func (p *Parser) parseModuleItem() (ast.ModuleItem, error) {
	switch {
	case p.cur.Kind == lexer.Keyword && p.cur.Text == "always":
		block, err := p.parseAlwaysBlock()
		if err != nil {
			return ast.ModuleItem{}, err
		}
		return ast.ModuleItem{Kind: ast.ItemAlwaysBlock, Always: block}, nil

	case p.cur.Kind == lexer.Keyword && p.cur.Text == "assign":
		ca, err := p.parseContinuousAssignment()
		if err != nil {
			return ast.ModuleItem{}, err
		}
		return ast.ModuleItem{Kind: ast.ItemContinuousAssignment, ContAssign: ca}, nil

	case p.cur.Kind == lexer.Keyword && (p.cur.Text == "reg" || p.cur.Text == "wire"):
		decl, err := p.parseSignalDeclaration()
		if err != nil {
			return ast.ModuleItem{}, err
		}
		return ast.ModuleItem{Kind: ast.ItemSignalDeclaration, SignalDecl: decl}, nil

	default:
		return ast.ModuleItem{}, statementError(p.cur.Text)
	}
}

func (p *Parser) parseContinuousAssignment() (*ast.ContinuousAssignment, error) {
	p.advance() // consume 'assign'
	lhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Symbol, "="); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Symbol, ";"); err != nil {
		return nil, err
	}
	return &ast.ContinuousAssignment{LHS: lhs, RHS: rhs}, nil
}

func (p *Parser) parseSignalDeclaration() (*ast.SignalDeclaration, error) {
	isRegister := p.cur.Text == "reg"
	p.advance() // consume 'reg' or 'wire'

	var rng *ast.BitRange
	if p.match(lexer.Symbol, "[") {
		r, err := p.parseBitRange()
		if err != nil {
			return nil, err
		}
		rng = &r
	}

	var names []string
	for {
		names = append(names, p.cur.Text)
		if err := p.expect(lexer.Identifier, ""); err != nil {
			return nil, err
		}
		if !p.match(lexer.Symbol, ",") {
			break
		}
	}
	if err := p.expect(lexer.Symbol, ";"); err != nil {
		return nil, err
	}

	return &ast.SignalDeclaration{IsRegister: isRegister, Range: rng, Names: names}, nil
}

// ---------------------------------------------------------------------
// Always block
// ---------------------------------------------------------------------

func (p *Parser) parseAlwaysBlock() (*ast.AlwaysBlock, error) {
	p.advance() // consume 'always'
	if err := p.expect(lexer.Symbol, "@"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Symbol, "("); err != nil {
		return nil, err
	}

	var sensitivity []ast.Sensitivity
	for !(p.cur.Kind == lexer.Symbol && p.cur.Text == ")") {
		s, err := p.parseSensitivity()
		if err != nil {
			return nil, err
		}
		sensitivity = append(sensitivity, s)

		p.match(lexer.Keyword, "or")
		p.match(lexer.Symbol, ",")
	}
	if err := p.expect(lexer.Symbol, ")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return p.arena.NewAlwaysBlock(sensitivity, body), nil
}

func (p *Parser) parseSensitivity() (ast.Sensitivity, error) {
	edge := ast.EdgeNone
	switch {
	case p.match(lexer.Keyword, "posedge"):
		edge = ast.EdgePos
	case p.match(lexer.Keyword, "negedge"):
		edge = ast.EdgeNeg
	}

	if p.cur.Kind != lexer.Identifier && p.cur.Kind != lexer.Symbol {
		return ast.Sensitivity{}, expectedGotError("sensitivity signal", p.cur.Text)
	}
	name := p.cur.Text
	p.advance()

	return ast.Sensitivity{Edge: edge, SignalName: name}, nil
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.match(lexer.Keyword, "begin"):
		var stmts []ast.Statement
		for !(p.cur.Kind == lexer.Keyword && p.cur.Text == "end") {
			s, err := p.parseStatement()
			if err != nil {
				return ast.Statement{}, err
			}
			stmts = append(stmts, s)
		}
		if err := p.expect(lexer.Keyword, "end"); err != nil {
			return ast.Statement{}, err
		}
		block := p.arena.NewBlockStatement(stmts)
		return ast.Statement{Kind: ast.StmtBlock, Block: block}, nil

	case p.match(lexer.Keyword, "if"):
		if err := p.expect(lexer.Symbol, "("); err != nil {
			return ast.Statement{}, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return ast.Statement{}, err
		}
		if err := p.expect(lexer.Symbol, ")"); err != nil {
			return ast.Statement{}, err
		}
		trueBranch, err := p.parseStatement()
		if err != nil {
			return ast.Statement{}, err
		}
		var falseBranch *ast.Statement
		if p.match(lexer.Keyword, "else") {
			fb, err := p.parseStatement()
			if err != nil {
				return ast.Statement{}, err
			}
			falseBranch = &fb
		}
		ifStmt := p.arena.NewIfStatement(cond, trueBranch, falseBranch)
		return ast.Statement{Kind: ast.StmtIf, If: ifStmt}, nil

	case p.match(lexer.Keyword, "case"):
		if err := p.expect(lexer.Symbol, "("); err != nil {
			return ast.Statement{}, err
		}
		cond, err := p.parseExpression()
		if err != nil {
			return ast.Statement{}, err
		}
		if err := p.expect(lexer.Symbol, ")"); err != nil {
			return ast.Statement{}, err
		}

		var branches []ast.CaseBranch
		var defaultBranch *ast.Statement
		for !(p.cur.Kind == lexer.Keyword && p.cur.Text == "endcase") {
			if p.match(lexer.Keyword, "default") {
				if err := p.expect(lexer.Symbol, ":"); err != nil {
					return ast.Statement{}, err
				}
				body, err := p.parseStatement()
				if err != nil {
					return ast.Statement{}, err
				}
				// Multiple `default:` arms overwrite the slot — last one
				// wins, per spec.md §9.2.
				defaultBranch = &body
				continue
			}
			value, err := p.parseExpression()
			if err != nil {
				return ast.Statement{}, err
			}
			if err := p.expect(lexer.Symbol, ":"); err != nil {
				return ast.Statement{}, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return ast.Statement{}, err
			}
			branches = append(branches, ast.CaseBranch{Value: value, Body: body})
		}
		if err := p.expect(lexer.Keyword, "endcase"); err != nil {
			return ast.Statement{}, err
		}
		caseStmt := p.arena.NewCaseStatement(cond, branches, defaultBranch)
		return ast.Statement{Kind: ast.StmtCase, Case: caseStmt}, nil

	case p.cur.Kind == lexer.Identifier:
		lhs := ast.Expression{Kind: ast.ExprIdentifier, Name: p.cur.Text}
		p.advance()

		var isBlocking bool
		switch {
		case p.match(lexer.Symbol, "="):
			isBlocking = true
		case p.match(lexer.Symbol, "<="):
			isBlocking = false
		default:
			return ast.Statement{}, statementError(p.cur.Text)
		}

		rhs, err := p.parseExpression()
		if err != nil {
			return ast.Statement{}, err
		}
		if err := p.expect(lexer.Symbol, ";"); err != nil {
			return ast.Statement{}, err
		}
		assign := p.arena.NewAssignment(lhs, rhs, isBlocking)
		return ast.Statement{Kind: ast.StmtAssignment, Assignment: assign}, nil

	default:
		return ast.Statement{}, statementError(p.cur.Text)
	}
}

// ---------------------------------------------------------------------
// Expressions — classical four-level precedence cascade, left-associative
// at every level, per spec.md §4.3.
// ---------------------------------------------------------------------

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseExprLevel4()
}

// Level 4 (lowest): ==, !=, >=, <=, >, <, &&, ||
func (p *Parser) parseExprLevel4() (ast.Expression, error) {
	left, err := p.parseExprLevel3()
	if err != nil {
		return ast.Expression{}, err
	}
	for isLevel4Op(p.cur) {
		op := p.cur.Text
		p.advance()
		right, err := p.parseExprLevel3()
		if err != nil {
			return ast.Expression{}, err
		}
		left = ast.Expression{Kind: ast.ExprBinary, Binary: p.arena.NewBinaryExpression(op, left, right)}
	}
	return left, nil
}

// Level 3 (term): +, -, |, &, ^
func (p *Parser) parseExprLevel3() (ast.Expression, error) {
	left, err := p.parseExprLevel2()
	if err != nil {
		return ast.Expression{}, err
	}
	for isLevel3Op(p.cur) {
		op := p.cur.Text
		p.advance()
		right, err := p.parseExprLevel2()
		if err != nil {
			return ast.Expression{}, err
		}
		left = ast.Expression{Kind: ast.ExprBinary, Binary: p.arena.NewBinaryExpression(op, left, right)}
	}
	return left, nil
}

// Level 2 (factor): *, /, <<, >>
func (p *Parser) parseExprLevel2() (ast.Expression, error) {
	left, err := p.parseExprPrimary()
	if err != nil {
		return ast.Expression{}, err
	}
	for isLevel2Op(p.cur) {
		op := p.cur.Text
		p.advance()
		right, err := p.parseExprPrimary()
		if err != nil {
			return ast.Expression{}, err
		}
		left = ast.Expression{Kind: ast.ExprBinary, Binary: p.arena.NewBinaryExpression(op, left, right)}
	}
	return left, nil
}

// Level 1 (highest): identifier, number, parenthesized expression.
func (p *Parser) parseExprPrimary() (ast.Expression, error) {
	switch {
	case p.cur.Kind == lexer.Identifier:
		e := ast.Expression{Kind: ast.ExprIdentifier, Name: p.cur.Text}
		p.advance()
		return e, nil

	case p.cur.Kind == lexer.Number:
		e := ast.Expression{Kind: ast.ExprNumber, Text: p.cur.Text}
		p.advance()
		return e, nil

	case p.match(lexer.Symbol, "("):
		inner, err := p.parseExpression()
		if err != nil {
			return ast.Expression{}, err
		}
		if err := p.expect(lexer.Symbol, ")"); err != nil {
			return ast.Expression{}, err
		}
		return inner, nil

	default:
		return ast.Expression{}, expectedGotError("expression", p.cur.Text)
	}
}

func isLevel2Op(t lexer.Token) bool {
	return t.Kind == lexer.Symbol && (t.Text == "*" || t.Text == "/" || t.Text == "<<" || t.Text == ">>")
}

func isLevel3Op(t lexer.Token) bool {
	return t.Kind == lexer.Symbol && (t.Text == "+" || t.Text == "-" || t.Text == "|" || t.Text == "&" || t.Text == "^")
}

func isLevel4Op(t lexer.Token) bool {
	if t.Kind != lexer.Symbol {
		return false
	}
	switch t.Text {
	case "==", "!=", ">=", "<=", ">", "<", "&&", "||":
		return true
	default:
		return false
	}
}
