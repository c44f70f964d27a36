// Package induct proves $equiv comparison cells by bounded temporal
// induction.  The prover unrolls the circuit one timestep at a time into
// an incremental SAT instance, assumes that every comparison holds at each
// encoded step, and checks whether consistency through step s forces
// consistency at step s+1.  When the batched induction does not succeed
// within the step budget, each comparison is attempted individually at the
// final step.
//
// This proves a deliberately weak property: that the compared circuits
// cannot diverge once they have agreed at every comparison point for one
// cycle.  Combined with simulation evidence that the circuits start out
// in sync, it discharges comparison points which a purely combinational
// check cannot.
package induct

import (
	"fmt"

	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"

	"github.com/c-elegans/go-equiv/pkg/rtl"
	"github.com/c-elegans/go-equiv/pkg/sat"
)

// DefaultMaxSteps is the induction bound used when none is given.
const DefaultMaxSteps = 4

// Prover proves the $equiv cells of one module.  It owns its encoding
// context for the duration of one Run and assumes a stable snapshot of the
// module's cells; external mutation of the module while the prover is
// alive is undefined.
type Prover struct {
	module *rtl.Module
	sigmap *rtl.SigMap
	// cells are all selected cells, imported at every timestep.
	cells []*rtl.Cell
	// workset holds the unproven $equiv cells under consideration.
	workset []*rtl.Cell

	ctx      *sat.Context
	enc      *sat.Encoder
	maxSteps int

	// stepOK maps each encoded step to the term asserting that every
	// workset comparison holds at that step.
	stepOK map[int]z.Lit
	warned map[*rtl.Cell]bool

	proven int
}

// New constructs a prover over the given module.  The workset must
// already be filtered to $equiv cells whose operands are not canonically
// identical; each operand must canonicalise to exactly one bit.
func New(module *rtl.Module, sigmap *rtl.SigMap, workset []*rtl.Cell, maxSteps int) *Prover {
	ctx := sat.NewContext()
	//
	return &Prover{
		module:   module,
		sigmap:   sigmap,
		cells:    module.Cells(),
		workset:  workset,
		ctx:      ctx,
		enc:      sat.NewEncoder(ctx, sigmap),
		maxSteps: maxSteps,
		stepOK:   make(map[int]z.Lit),
		warned:   make(map[*rtl.Cell]bool),
	}
}

// Proven returns the number of comparisons proven so far in this run.
func (p *Prover) Proven() int {
	return p.proven
}

// Run executes the induction loop and, if needed, the per-claim fallback.
// It returns the number of comparisons proven.  Proven comparisons have
// their B port rewritten to alias their A port.
func (p *Prover) Run() int {
	log.Infof("found %d unproven $equiv cells in module %s", len(p.workset), p.module.Name)
	//
	p.encodeTimestep(1)
	//
	for step := 1; step <= p.maxSteps; step++ {
		p.ctx.Assert(p.stepOK[step])
		//
		log.Debugf("  proving existence of base case for step %d (%d clauses over %d variables)",
			step, p.ctx.Clauses(), p.ctx.Vars())
		//
		if !p.ctx.Solve() {
			// The accumulated constraints are contradictory before any
			// hypothesis is added, so every further solve in this context
			// would be vacuously UNSAT.  Nothing can be proven.
			log.Infof("  proof for base case failed, circuit inherently diverges")
			return 0
		}
		//
		p.encodeTimestep(step + 1)
		notNext := p.stepOK[step+1].Not()
		//
		log.Debugf("  proving induction step %d (%d clauses over %d variables)",
			step, p.ctx.Clauses(), p.ctx.Vars())
		//
		if !p.ctx.Solve(notNext) {
			// Consistency through step forces consistency at step+1, so
			// every comparison in the workset holds simultaneously.
			log.Infof("  proof for induction step holds, entire workset of %d cells proven", len(p.workset))
			//
			for _, cell := range p.workset {
				cell.SetPort("B", cell.Port("A"))
			}
			//
			p.proven += len(p.workset)
			//
			return p.proven
		}
		//
		if step != p.maxSteps {
			log.Debugf("  proof for induction step failed, extending to next time step")
		} else {
			log.Debugf("  proof for induction step failed, trying to prove individual $equiv from workset")
		}
	}
	//
	p.fallback()
	//
	return p.proven
}

// fallback attempts each remaining comparison individually at step
// maxSteps+1.  Claims are independent: each solve is a one-shot hypothesis
// and proven claims do not affect later ones.
func (p *Prover) fallback() {
	// With a step budget of zero the loop never encoded past the first
	// step, so the operand bits at maxSteps+1 do not exist yet.
	if _, ok := p.stepOK[p.maxSteps+1]; !ok {
		p.encodeTimestep(p.maxSteps + 1)
	}
	//
	for _, cell := range p.workset {
		bitA := p.sigmap.Apply(cell.Port("A").ToSingleBit())
		bitB := p.sigmap.Apply(cell.Port("B").ToSingleBit())
		//
		litA := p.enc.Literal(bitA, p.maxSteps+1)
		litB := p.enc.Literal(bitB, p.maxSteps+1)
		//
		if !p.ctx.Solve(p.ctx.Xor(litA, litB)) {
			log.Infof("  proved $equiv for %s", cell.Port("Y"))
			cell.SetPort("B", cell.Port("A"))
			p.proven++
		} else {
			log.Debugf("  failed to prove $equiv for %s", cell.Port("Y"))
		}
	}
}

// encodeTimestep imports every selected cell at the given step and records
// the aggregate consistency term for the workset.  Steps are encoded
// exactly once, in increasing order with no gaps.
func (p *Prover) encodeTimestep(step int) {
	if _, ok := p.stepOK[step]; ok {
		panic(fmt.Sprintf("timestep %d already encoded", step))
	}
	//
	var equalTerms []z.Lit
	//
	for _, cell := range p.cells {
		if !p.enc.ImportCell(cell, step) && !p.warned[cell] {
			log.Warnf("no SAT model available for cell %s (%s)", cell.Name, cell.Type)
			p.warned[cell] = true
		}
		//
		if cell.Type == "$equiv" {
			bitA := p.sigmap.Apply(cell.Port("A").ToSingleBit())
			bitB := p.sigmap.Apply(cell.Port("B").ToSingleBit())
			//
			if bitA != bitB {
				equalTerms = append(equalTerms, p.enc.Equal(bitA, bitB, step))
			}
		}
	}
	//
	p.stepOK[step] = p.ctx.Ands(equalTerms...)
}
