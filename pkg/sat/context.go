// Package sat wraps the gini SAT solver behind an incremental encoding
// context, and translates circuit cells into solver constraints one
// timestep at a time.
package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Context owns the solver state for one proof run.  Terms are built in a
// hash-consed combinational circuit (logic.C) and exported incrementally
// to the underlying solver as their cones are needed, so that learned
// clauses persist across solves.  Clauses and variables are only ever
// added, never removed.
//
// A Context is single-owner and not safe for concurrent use.
type Context struct {
	terms   *logic.C
	solver  inter.S
	marks   []int8
	clauses int
}

// NewContext creates a fresh encoding context with an empty clause set.
func NewContext() *Context {
	return &Context{
		terms:  logic.NewC(),
		solver: gini.New(),
	}
}

// T returns the constant true literal.
func (ctx *Context) T() z.Lit { return ctx.terms.T }

// F returns the constant false literal.
func (ctx *Context) F() z.Lit { return ctx.terms.F }

// Lit allocates a fresh variable and returns its positive literal.
func (ctx *Context) Lit() z.Lit { return ctx.terms.Lit() }

// And returns a term equivalent to (a and b).
func (ctx *Context) And(a, b z.Lit) z.Lit { return ctx.terms.And(a, b) }

// Ands returns the conjunction of ms, or true when ms is empty.
func (ctx *Context) Ands(ms ...z.Lit) z.Lit { return ctx.terms.Ands(ms...) }

// Or returns a term equivalent to (a or b).
func (ctx *Context) Or(a, b z.Lit) z.Lit { return ctx.terms.Or(a, b) }

// Ors returns the disjunction of ms, or false when ms is empty.
func (ctx *Context) Ors(ms ...z.Lit) z.Lit { return ctx.terms.Ors(ms...) }

// Xor returns a term equivalent to (a xor b).
func (ctx *Context) Xor(a, b z.Lit) z.Lit { return ctx.terms.Xor(a, b) }

// Iff returns a term equivalent to (a iff b).
func (ctx *Context) Iff(a, b z.Lit) z.Lit { return ctx.terms.Xor(a, b).Not() }

// Choice returns a term equivalent to (if sel then t else e).
func (ctx *Context) Choice(sel, t, e z.Lit) z.Lit { return ctx.terms.Choice(sel, t, e) }

// Assert permanently constrains m to be true for all subsequent solves.
func (ctx *Context) Assert(m z.Lit) {
	ctx.bind(m)
	ctx.solver.Add(m)
	ctx.solver.Add(z.LitNull)
	ctx.clauses++
}

// Solve checks satisfiability of the permanent clause set under the given
// one-shot assumptions, returning true for SAT and false for UNSAT.  The
// assumptions are forgotten after the call.
func (ctx *Context) Solve(assumptions ...z.Lit) bool {
	for _, m := range assumptions {
		ctx.bind(m)
		ctx.solver.Assume(m)
	}

	return ctx.solver.Solve() == 1
}

// Value returns the value of m in the model found by the last satisfiable
// Solve call.
func (ctx *Context) Value(m z.Lit) bool {
	return ctx.solver.Value(m)
}

// Clauses returns the number of clauses exported to the solver so far.
func (ctx *Context) Clauses() int { return ctx.clauses }

// Vars returns the number of variables known to the solver so far.
func (ctx *Context) Vars() int { return int(ctx.solver.MaxVar()) }

// bind exports the cone of m into the solver's clause set.  Already
// exported gates are skipped, so repeated binding of overlapping terms
// costs only the new gates.
func (ctx *Context) bind(m z.Lit) {
	var added int
	// Tseitin clauses: three per and-gate.
	ctx.marks, added = ctx.terms.CnfSince(ctx.solver, ctx.marks, m)
	ctx.clauses += 3 * added
}
