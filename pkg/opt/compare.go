// Package opt holds local, pattern-based netlist rewrites.
package opt

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/c-elegans/go-equiv/pkg/rtl"
)

// OptimizeCompares folds comparison cells against a constant zero operand
// within the given module, returning the number of cells rewritten:
//
//	a <  0 (signed)    becomes the sign bit of a
//	a <  0 (unsigned)  becomes constant 0
//	a >= 0 (signed)    becomes the negated sign bit of a
//	a >= 0 (unsigned)  becomes constant 1
//
// Rewritten cells are removed and their Y output driven directly.
func OptimizeCompares(mod *rtl.Module) int {
	count := 0
	// Snapshot, since rewrites remove cells mid-iteration.
	cells := make([]*rtl.Cell, len(mod.Cells()))
	copy(cells, mod.Cells())
	//
	for _, cell := range cells {
		if cell.Type != "$lt" && cell.Type != "$ge" {
			continue
		}
		//
		b := cell.Port("B")
		if !b.IsFullyConst() || !b.IsFullyZero() {
			continue
		}
		//
		a := cell.Port("A")
		y := cell.Port("Y")
		isSigned := cell.Param("A_SIGNED", 0) != 0
		//
		switch {
		case cell.Type == "$lt" && isSigned:
			// a < 0 is the sign bit of a.
			if len(a) == 0 {
				continue
			}

			log.Debugf("folding %s (signed a < 0) into sign bit", cell.Name)
			rhs := rtl.NewConstSpec(rtl.S0, len(y))
			rhs[0] = a[len(a)-1]
			mod.Connect(y, rhs)
			mod.RemoveCell(cell)
		case cell.Type == "$lt":
			// Unsigned a < 0 never holds.
			log.Debugf("folding %s (unsigned a < 0) into constant 0", cell.Name)
			mod.Connect(y, rtl.NewConstSpec(rtl.S0, len(y)))
			mod.RemoveCell(cell)
		case cell.Type == "$ge" && isSigned:
			// a >= 0 is the negated sign bit of a.
			if len(a) == 0 {
				continue
			}

			log.Debugf("folding %s (signed a >= 0) into negated sign bit", cell.Name)
			sign := rtl.NewConstSpec(rtl.S0, len(y))
			sign[0] = a[len(a)-1]
			mod.RemoveCell(cell)
			//
			not := mod.AddCell(fmt.Sprintf("%s$not", cell.Name), "$not")
			not.SetPort("A", sign)
			not.SetPort("Y", y)
			not.Parameters["A_WIDTH"] = len(sign)
			not.Parameters["Y_WIDTH"] = len(y)
		default:
			// Unsigned a >= 0 always holds.
			log.Debugf("folding %s (unsigned a >= 0) into constant 1", cell.Name)
			rhs := rtl.NewConstSpec(rtl.S0, len(y))
			rhs[0] = rtl.SigBit{State: rtl.S1}
			mod.Connect(y, rhs)
			mod.RemoveCell(cell)
		}
		//
		count++
	}
	//
	return count
}
