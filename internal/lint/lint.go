// Package lint implements the two-pass — really four-pass, per
// spec.md §4.6 — semantic analysis of a parsed module: it tracks
// per-signal state across always-blocks and emits an ordered,
// duplicate-tolerant list of human-readable violation strings. It is the
// system's single violation collector; internal/eval never emits a
// violation itself, only the raw Overflow facts this package turns into
// text.
package lint

import (
	"fmt"
	"strings"

	"github.com/robert-at-pretension-io/vlint/internal/ast"
	"github.com/robert-at-pretension-io/vlint/internal/eval"
)

// Linter accumulates per-module analysis state. A Linter is meant to
// analyze exactly one Module; construct a fresh one per module.
type Linter struct {
	paramValues     map[string]uint64
	signalWidths    map[string]uint32
	registerWritten map[string]bool
	registerOrder   []string // first-seen order of registerWritten keys, for deterministic reporting
	registerDriver  map[string]*ast.AlwaysBlock
	fsmCandidates   []string
	usedCaseItems   map[string]bool

	violations []string

	currentBlock    *ast.AlwaysBlock
	inCombinational bool
}

// New returns a Linter ready to analyze one module.
func New() *Linter {
	return &Linter{
		paramValues:     make(map[string]uint64),
		signalWidths:    make(map[string]uint32),
		registerWritten: make(map[string]bool),
		registerDriver:  make(map[string]*ast.AlwaysBlock),
		usedCaseItems:   make(map[string]bool),
	}
}

// Violations returns the accumulated violation strings, in discovery
// order. Duplicates are preserved, per spec.md §4.6.
func (l *Linter) Violations() []string {
	return l.violations
}

func (l *Linter) report(msg string) {
	l.violations = append(l.violations, msg)
}

// trackRegister seeds registerWritten[name]=false the first time name is
// seen, recording insertion order separately so the uninitialized-register
// post-check can report in a deterministic, source-derived order rather
// than Go's randomized map iteration order.
func (l *Linter) trackRegister(name string) {
	if _, exists := l.registerWritten[name]; !exists {
		l.registerOrder = append(l.registerOrder, name)
	}
	l.registerWritten[name] = false
}

func (l *Linter) env() *eval.Env {
	return &eval.Env{Params: l.paramValues, Signals: l.signalWidths}
}

// evaluate evaluates e and turns any constant-overflow it finds into a
// Constant Math Overflow violation, in the order eval discovered them.
func (l *Linter) evaluate(e ast.Expression) eval.Result {
	result, overflows := eval.Evaluate(l.env(), e)
	for _, ov := range overflows {
		l.report(fmt.Sprintf("Constant Math Overflow: %d + %d", ov.Left, ov.Right))
	}
	return result
}

// AnalyzeModule runs the four analysis passes over m, populating the
// Linter's internal tables and violation list.
func (l *Linter) AnalyzeModule(m *ast.Module) {
	l.analyzeParameters(m)
	l.analyzePorts(m)
	l.analyzeItems(m)
	l.postChecks()
}

// Pass 1: parameters. Every parameter name is a candidate FSM state;
// foldable defaults are recorded for later width computations.
func (l *Linter) analyzeParameters(m *ast.Module) {
	for _, p := range m.Parameters {
		l.fsmCandidates = append(l.fsmCandidates, p.Name)

		result := l.evaluate(p.Default)
		if result.HasValue {
			l.paramValues[p.Name] = result.Value
		}
	}
}

// Pass 2: ports. Computes each port's width and seeds register tracking
// for output regs.
func (l *Linter) analyzePorts(m *ast.Module) {
	for _, port := range m.Ports {
		width := l.rangeWidth(port.Range)
		l.signalWidths[port.Name] = width

		if port.IsRegister && port.Direction == ast.DirOutput {
			l.trackRegister(port.Name)
		}
	}
}

// rangeWidth computes a declared width from an optional bit range: 1 for
// a scalar, or msb-lsb+1 when both bounds fold to constants.
func (l *Linter) rangeWidth(r *ast.BitRange) uint32 {
	if r == nil {
		return 1
	}
	msb := l.evaluate(r.MSB)
	lsb := l.evaluate(r.LSB)
	if msb.HasValue && lsb.HasValue {
		return uint32(msb.Value-lsb.Value) + 1
	}
	return 1
}

// Pass 3: module items, in source order.
func (l *Linter) analyzeItems(m *ast.Module) {
	for _, item := range m.Items {
		switch item.Kind {
		case ast.ItemSignalDeclaration:
			l.analyzeSignalDeclaration(item.SignalDecl)
		case ast.ItemContinuousAssignment:
			l.analyzeContinuousAssignment(item.ContAssign)
		case ast.ItemAlwaysBlock:
			l.analyzeAlwaysBlock(item.Always)
		}
	}
}

func (l *Linter) analyzeSignalDeclaration(decl *ast.SignalDeclaration) {
	width := l.rangeWidth(decl.Range)
	for _, name := range decl.Names {
		l.signalWidths[name] = width
		if decl.IsRegister {
			l.trackRegister(name)
		}
	}
}

func (l *Linter) analyzeContinuousAssignment(ca *ast.ContinuousAssignment) {
	rhs := l.evaluate(ca.RHS)

	if ca.LHS.Kind == ast.ExprIdentifier {
		name := ca.LHS.Name
		if lhsWidth, ok := l.signalWidths[name]; ok && rhs.Width > lhsWidth {
			l.report(fmt.Sprintf(
				"Width Mismatch on continuous assignment: Assigning a %d-bit expression to a %d-bit signal '%s'.",
				rhs.Width, lhsWidth, name))
		}
		l.registerWritten[name] = true
	}
}

func (l *Linter) analyzeAlwaysBlock(block *ast.AlwaysBlock) {
	l.currentBlock = block
	l.inCombinational = block.IsCombinational()

	l.analyzeStatement(block.Body)

	l.currentBlock = nil
	l.inCombinational = false
}

func (l *Linter) analyzeStatement(s ast.Statement) {
	switch s.Kind {
	case ast.StmtAssignment:
		l.analyzeAssignment(s.Assignment)
	case ast.StmtIf:
		l.analyzeIf(s.If)
	case ast.StmtBlock:
		for _, inner := range s.Block.Statements {
			l.analyzeStatement(inner)
		}
	case ast.StmtCase:
		l.analyzeCase(s.Case)
	}
}

func (l *Linter) analyzeAssignment(a *ast.Assignment) {
	if a.IsBlocking && !l.inCombinational {
		l.report("Design Practice: Using blocking assignment '=' inside a sequential (edge-triggered) block.")
	}
	if !a.IsBlocking && l.inCombinational {
		l.report("Design Practice: Using non-blocking assignment '<=' inside a combinational block.")
	}

	rhs := l.evaluate(a.RHS)

	if a.LHS.Kind == ast.ExprIdentifier {
		name := a.LHS.Name
		l.registerWritten[name] = true

		if driver, ok := l.registerDriver[name]; ok && driver != l.currentBlock {
			l.report(fmt.Sprintf("Multi-Driven Register: '%s' is driven by multiple blocks.", name))
		}
		l.registerDriver[name] = l.currentBlock

		if lhsWidth, ok := l.signalWidths[name]; ok && rhs.Width > lhsWidth {
			l.report(fmt.Sprintf(
				"Structural Width Mismatch (Carry Overflow): Assigning a %d-bit mathematical result to a %d-bit register '%s'.",
				rhs.Width, lhsWidth, name))
		}
	}
}

func (l *Linter) analyzeIf(ifStmt *ast.IfStatement) {
	cond := l.evaluate(ifStmt.Condition)
	if cond.HasValue && cond.Value == 0 {
		l.report("Unreachable Block: 'if' condition evaluates to false (0).")
	}

	if l.inCombinational && ifStmt.FalseBranch == nil {
		l.report("Infer Latch: 'if' statement without 'else' branch.")
	}

	l.analyzeStatement(ifStmt.TrueBranch)
	if ifStmt.FalseBranch != nil {
		l.analyzeStatement(*ifStmt.FalseBranch)
	}
}

func (l *Linter) analyzeCase(c *ast.CaseStatement) {
	l.evaluate(c.Condition)

	if l.inCombinational && c.Default == nil {
		l.report("Non Full/Parallel Case: 'case' missing 'default'.")
	} else if c.Default != nil {
		l.analyzeStatement(*c.Default)
	}

	for _, branch := range c.Branches {
		if branch.Value.Kind == ast.ExprIdentifier {
			l.usedCaseItems[branch.Value.Name] = true
		}
		l.analyzeStatement(branch.Body)
	}
}

// Pass 4: post-checks that need the fully populated tables.
func (l *Linter) postChecks() {
	l.checkUnreachableFSMStates()
	l.checkUninitializedRegisters()
}

func (l *Linter) checkUnreachableFSMStates() {
	for _, name := range l.fsmCandidates {
		if !strings.Contains(name, "STATE") {
			continue
		}
		if !l.usedCaseItems[name] {
			l.report(fmt.Sprintf("Unreachable Finite State Machine State: Parameter '%s' never used.", name))
		}
	}
}

func (l *Linter) checkUninitializedRegisters() {
	for _, name := range l.registerOrder {
		if !l.registerWritten[name] {
			l.report(fmt.Sprintf("Un-initialized Register/Wire: '%s' declared but never driven.", name))
		}
	}
}
