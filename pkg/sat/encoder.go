package sat

import (
	"github.com/go-air/gini/z"

	"github.com/c-elegans/go-equiv/pkg/rtl"
)

// Encoder imports circuit cells into a Context one timestep at a time.
// Every (canonical signal bit, step) pair is assigned exactly one solver
// literal, created lazily on first reference; cell behaviour at a step is
// expressed as permanent assertions over those literals.
//
// State elements chain steps together: a $dff ties its output at step k+1
// to its input at step k.  Beyond that, steps are independent copies of
// the combinational logic.
type Encoder struct {
	ctx    *Context
	sigmap *rtl.SigMap
	lits   map[stepBit]z.Lit
}

type stepBit struct {
	bit  rtl.SigBit
	step int
}

// NewEncoder creates an encoder over the given context, canonicalising
// signal references through sigmap.
func NewEncoder(ctx *Context, sigmap *rtl.SigMap) *Encoder {
	return &Encoder{
		ctx:    ctx,
		sigmap: sigmap,
		lits:   make(map[stepBit]z.Lit),
	}
}

// Literal returns the solver literal carrying the value of the given
// signal bit at the given step.  Constant bits map to the constant
// literals; an x bit is a free variable per step.
func (e *Encoder) Literal(bit rtl.SigBit, step int) z.Lit {
	bit = e.sigmap.Apply(bit)
	//
	if bit.IsConst() {
		switch bit.State {
		case rtl.S0:
			return e.ctx.F()
		case rtl.S1:
			return e.ctx.T()
		}
		// fall through: x bits get a per-step variable below
	}
	//
	key := stepBit{bit, step}
	if m, ok := e.lits[key]; ok {
		return m
	}

	m := e.ctx.Lit()
	e.lits[key] = m

	return m
}

// Equal returns a term which is true iff bits a and b carry the same
// value at the given step.
func (e *Encoder) Equal(a, b rtl.SigBit, step int) z.Lit {
	return e.ctx.Iff(e.Literal(a, step), e.Literal(b, step))
}

// ImportCell translates the behaviour of one cell at the given step into
// permanent constraints.  It returns false when the cell type has no
// translation, in which case no constraints are added and the cell's
// outputs are left unconstrained.
func (e *Encoder) ImportCell(cell *rtl.Cell, step int) bool {
	switch cell.Type {
	case "$not":
		a := e.ports(cell, "A", step)
		for i, y := range e.ports(cell, "Y", step) {
			e.define(y, e.extend(a, i, signed(cell, "A")).Not())
		}
	case "$pos":
		a := e.ports(cell, "A", step)
		for i, y := range e.ports(cell, "Y", step) {
			e.define(y, e.extend(a, i, signed(cell, "A")))
		}
	case "$and", "$or", "$xor", "$xnor":
		a := e.ports(cell, "A", step)
		b := e.ports(cell, "B", step)
		//
		for i, y := range e.ports(cell, "Y", step) {
			ai := e.extend(a, i, signed(cell, "A"))
			bi := e.extend(b, i, signed(cell, "B"))
			//
			switch cell.Type {
			case "$and":
				e.define(y, e.ctx.And(ai, bi))
			case "$or":
				e.define(y, e.ctx.Or(ai, bi))
			case "$xor":
				e.define(y, e.ctx.Xor(ai, bi))
			case "$xnor":
				e.define(y, e.ctx.Iff(ai, bi))
			}
		}
	case "$mux":
		a := e.ports(cell, "A", step)
		b := e.ports(cell, "B", step)
		sel := e.Literal(cell.Port("S").ToSingleBit(), step)
		//
		for i, y := range e.ports(cell, "Y", step) {
			e.define(y, e.ctx.Choice(sel, e.extend(b, i, false), e.extend(a, i, false)))
		}
	case "$eq", "$ne":
		eq := e.equality(cell, step)
		if cell.Type == "$ne" {
			eq = eq.Not()
		}

		e.defineReduced(cell, step, eq)
	case "$reduce_and":
		e.defineReduced(cell, step, e.ctx.Ands(e.ports(cell, "A", step)...))
	case "$reduce_or", "$reduce_bool":
		e.defineReduced(cell, step, e.ctx.Ors(e.ports(cell, "A", step)...))
	case "$logic_not":
		e.defineReduced(cell, step, e.ctx.Ors(e.ports(cell, "A", step)...).Not())
	case "$logic_and":
		a := e.ctx.Ors(e.ports(cell, "A", step)...)
		b := e.ctx.Ors(e.ports(cell, "B", step)...)
		e.defineReduced(cell, step, e.ctx.And(a, b))
	case "$logic_or":
		a := e.ctx.Ors(e.ports(cell, "A", step)...)
		b := e.ctx.Ors(e.ports(cell, "B", step)...)
		e.defineReduced(cell, step, e.ctx.Or(a, b))
	case "$dff":
		// State chaining: Q at step+1 is D at step.  Q at step 1 is left
		// unconstrained, which models an arbitrary initial state.
		d := e.ports(cell, "D", step)
		q := e.ports(cell, "Q", step+1)
		//
		for i := range q {
			e.define(q[i], e.extend(d, i, false))
		}
	case "$equiv":
		// The A operand drives the comparison output; the B operand is
		// the claim under proof and does not constrain Y.
		y := e.Literal(cell.Port("Y").ToSingleBit(), step)
		a := e.Literal(cell.Port("A").ToSingleBit(), step)
		e.define(y, a)
	default:
		return false
	}

	return true
}

// define constrains lit to equal the given term.
func (e *Encoder) define(lit, term z.Lit) {
	e.ctx.Assert(e.ctx.Iff(lit, term))
}

// defineReduced constrains bit zero of a cell's Y port to the given term
// and any upper Y bits to false.
func (e *Encoder) defineReduced(cell *rtl.Cell, step int, term z.Lit) {
	for i, y := range e.ports(cell, "Y", step) {
		if i == 0 {
			e.define(y, term)
		} else {
			e.define(y, e.ctx.F())
		}
	}
}

// equality returns a term which is true iff the A and B operands of cell
// are equal, comparing over the wider of the two operands.
func (e *Encoder) equality(cell *rtl.Cell, step int) z.Lit {
	a := e.ports(cell, "A", step)
	b := e.ports(cell, "B", step)
	//
	width := len(a)
	if len(b) > width {
		width = len(b)
	}
	//
	terms := make([]z.Lit, width)
	for i := 0; i < width; i++ {
		terms[i] = e.ctx.Iff(e.extend(a, i, signed(cell, "A")), e.extend(b, i, signed(cell, "B")))
	}
	//
	return e.ctx.Ands(terms...)
}

// ports returns the literals of a cell port at the given step.
func (e *Encoder) ports(cell *rtl.Cell, port string, step int) []z.Lit {
	sig := cell.Port(port)
	lits := make([]z.Lit, len(sig))
	//
	for i, bit := range sig {
		lits[i] = e.Literal(bit, step)
	}
	//
	return lits
}

// extend reads bit i of an operand, sign- or zero-extending past its
// width.
func (e *Encoder) extend(lits []z.Lit, i int, signed bool) z.Lit {
	if i < len(lits) {
		return lits[i]
	} else if signed && len(lits) > 0 {
		return lits[len(lits)-1]
	}

	return e.ctx.F()
}

// signed reads the signedness parameter of a cell operand, e.g. A_SIGNED.
func signed(cell *rtl.Cell, port string) bool {
	return cell.Param(port+"_SIGNED", 0) != 0
}
