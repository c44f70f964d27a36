package opt

import (
	"testing"

	"github.com/c-elegans/go-equiv/pkg/rtl"
)

func Test_OptCompare_01(t *testing.T) {
	// Signed a < 0 folds into the sign bit of a.
	mod, cell := compareModule("$lt", 1)
	//
	if n := OptimizeCompares(mod); n != 1 {
		t.Errorf("expected 1 rewrite, got %d", n)
	}
	//
	checkRemoved(t, mod, cell)
	checkAliased(t, mod, mod.Bit("y", 0), mod.Bit("a", 3))
}

func Test_OptCompare_02(t *testing.T) {
	// Unsigned a < 0 never holds and folds into constant 0.
	mod, cell := compareModule("$lt", 0)
	//
	if n := OptimizeCompares(mod); n != 1 {
		t.Errorf("expected 1 rewrite, got %d", n)
	}
	//
	checkRemoved(t, mod, cell)
	checkAliased(t, mod, mod.Bit("y", 0), rtl.SigBit{State: rtl.S0})
}

func Test_OptCompare_03(t *testing.T) {
	// Signed a >= 0 folds into the negated sign bit.
	mod, cell := compareModule("$ge", 1)
	//
	if n := OptimizeCompares(mod); n != 1 {
		t.Errorf("expected 1 rewrite, got %d", n)
	}
	//
	checkRemoved(t, mod, cell)
	//
	not := mod.Cell("c$not")
	if not == nil || not.Type != "$not" {
		t.Fatalf("expected a $not cell driving the output")
	}
	//
	if !not.Port("Y").Equals(mod.Signal("y")) {
		t.Errorf("$not cell should drive the original output")
	}
	//
	if not.Port("A")[0] != mod.Bit("a", 3) {
		t.Errorf("$not cell should read the sign bit, got %s", not.Port("A"))
	}
}

func Test_OptCompare_04(t *testing.T) {
	// Unsigned a >= 0 always holds and folds into constant 1.
	mod, cell := compareModule("$ge", 0)
	//
	if n := OptimizeCompares(mod); n != 1 {
		t.Errorf("expected 1 rewrite, got %d", n)
	}
	//
	checkRemoved(t, mod, cell)
	checkAliased(t, mod, mod.Bit("y", 0), rtl.SigBit{State: rtl.S1})
}

func Test_OptCompare_05(t *testing.T) {
	// Comparisons against a non-zero operand are left alone.
	mod, cell := compareModule("$lt", 0)
	one := rtl.NewConstSpec(rtl.S0, 4)
	one[0] = rtl.SigBit{State: rtl.S1}
	cell.SetPort("B", one)
	//
	if n := OptimizeCompares(mod); n != 0 {
		t.Errorf("expected no rewrites, got %d", n)
	}
	//
	if mod.Cell("c") == nil {
		t.Errorf("cell with non-zero operand should survive")
	}
}

func Test_OptCompare_06(t *testing.T) {
	// Comparisons against a non-constant operand are left alone.
	mod, cell := compareModule("$ge", 1)
	cell.SetPort("B", mod.Signal("a"))
	//
	if n := OptimizeCompares(mod); n != 0 {
		t.Errorf("expected no rewrites, got %d", n)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// compareModule builds a module with one comparison cell "c" of the given
// type, comparing a four-bit operand against constant zero.
func compareModule(typ string, isSigned int) (*rtl.Module, *rtl.Cell) {
	mod := rtl.NewModule("m")
	mod.AddWire("a", 4)
	mod.AddWire("y", 1)
	//
	cell := mod.AddCell("c", typ)
	cell.SetPort("A", mod.Signal("a"))
	cell.SetPort("B", rtl.NewConstSpec(rtl.S0, 4))
	cell.SetPort("Y", mod.Signal("y"))
	cell.Parameters["A_SIGNED"] = isSigned
	//
	return mod, cell
}

func checkRemoved(t *testing.T, mod *rtl.Module, cell *rtl.Cell) {
	if mod.Cell(cell.Name) != nil {
		t.Errorf("rewritten cell %s should have been removed", cell.Name)
	}
}

// checkAliased checks that the module's connections tie the two bits
// together.
func checkAliased(t *testing.T, mod *rtl.Module, a rtl.SigBit, b rtl.SigBit) {
	sigmap := rtl.NewSigMap(mod)
	//
	if sigmap.Apply(a) != sigmap.Apply(b) {
		t.Errorf("expected %s to alias %s after rewrite", a, b)
	}
}
