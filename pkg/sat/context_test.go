package sat

import (
	"testing"
)

func Test_Context_01(t *testing.T) {
	ctx := NewContext()
	// An empty clause set is satisfiable.
	if !ctx.Solve() {
		t.Errorf("empty context should be satisfiable")
	}
}

func Test_Context_02(t *testing.T) {
	ctx := NewContext()
	x := ctx.Lit()
	ctx.Assert(x)
	//
	if !ctx.Solve() {
		t.Errorf("single asserted literal should be satisfiable")
	}
	// One-shot assumption contradicting the permanent clause set.
	if ctx.Solve(x.Not()) {
		t.Errorf("assumption contradicting assertion should be unsatisfiable")
	}
	// Assumptions are forgotten after each solve.
	if !ctx.Solve() {
		t.Errorf("context poisoned by a forgotten assumption")
	}
}

func Test_Context_03(t *testing.T) {
	ctx := NewContext()
	a, b := ctx.Lit(), ctx.Lit()
	ctx.Assert(ctx.And(a, b))
	//
	if ctx.Solve(a.Not()) {
		t.Errorf("negated conjunct should be unsatisfiable")
	}
	//
	if ctx.Solve(b.Not()) {
		t.Errorf("negated conjunct should be unsatisfiable")
	}
	//
	if !ctx.Solve(a, b) {
		t.Errorf("asserted conjunction should admit both conjuncts")
	}
}

func Test_Context_04(t *testing.T) {
	ctx := NewContext()
	a, b := ctx.Lit(), ctx.Lit()
	ctx.Assert(ctx.Iff(a, b))
	ctx.Assert(a)
	//
	if ctx.Solve(b.Not()) {
		t.Errorf("iff should propagate the asserted side")
	}
	//
	if !ctx.Solve(b) {
		t.Errorf("iff should admit the equal assignment")
	}
}

func Test_Context_05(t *testing.T) {
	ctx := NewContext()
	a, b := ctx.Lit(), ctx.Lit()
	// Xor admits exactly the differing assignments.
	ctx.Assert(ctx.Xor(a, b))
	//
	if ctx.Solve(a, b) {
		t.Errorf("xor should reject the equal assignment")
	}
	//
	if !ctx.Solve(a, b.Not()) {
		t.Errorf("xor should admit the differing assignment")
	}
}

func Test_Context_06(t *testing.T) {
	ctx := NewContext()
	// Asserting false poisons the clause set for good.
	ctx.Assert(ctx.F())
	//
	if ctx.Solve() {
		t.Errorf("asserted false should be unsatisfiable")
	}
}

func Test_Context_07(t *testing.T) {
	ctx := NewContext()
	sel, a, b := ctx.Lit(), ctx.Lit(), ctx.Lit()
	y := ctx.Choice(sel, a, b)
	//
	if ctx.Solve(sel, a, y.Not()) {
		t.Errorf("choice with true selector should follow its first branch")
	}
	//
	if ctx.Solve(sel.Not(), b, y.Not()) {
		t.Errorf("choice with false selector should follow its second branch")
	}
}

func Test_Context_08(t *testing.T) {
	ctx := NewContext()
	before := ctx.Clauses()
	//
	a, b := ctx.Lit(), ctx.Lit()
	ctx.Assert(ctx.And(a, b))
	// Monotonic growth: gates only ever get added.
	if ctx.Clauses() <= before {
		t.Errorf("clause count did not grow after assertion")
	}
	//
	if ctx.Vars() < 2 {
		t.Errorf("expected at least two variables, got %d", ctx.Vars())
	}
}
