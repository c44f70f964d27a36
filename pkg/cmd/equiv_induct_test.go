package cmd

import (
	"testing"

	"github.com/c-elegans/go-equiv/pkg/rtl"
)

func Test_ProveModule_01(t *testing.T) {
	// Both $equiv operands compute the same function, so the claim is
	// proven and rewritten.
	mod := claimModule()
	//
	if n := proveModule(mod, 4); n != 1 {
		t.Errorf("expected 1 proven cell, got %d", n)
	}
	//
	e1 := mod.Cell("e1")
	if !e1.Port("B").Equals(e1.Port("A")) {
		t.Errorf("proven claim should alias its operands")
	}
}

func Test_ProveModule_02(t *testing.T) {
	// Running the pass twice proves nothing new: the rewritten claim has
	// canonically identical operands and is filtered out of the workset.
	mod := claimModule()
	proveModule(mod, 4)
	//
	if n := proveModule(mod, 4); n != 0 {
		t.Errorf("second run should find an empty workset, got %d", n)
	}
}

func Test_ProveModule_03(t *testing.T) {
	// Claims already aliased through a module connection never reach the
	// solver.
	mod := rtl.NewModule("m")
	mod.AddWire("a", 1)
	mod.AddWire("b", 1)
	mod.AddWire("y", 1)
	mod.Connect(mod.Signal("b"), mod.Signal("a"))
	//
	cell := mod.AddCell("e1", "$equiv")
	cell.SetPort("A", mod.Signal("a"))
	cell.SetPort("B", mod.Signal("b"))
	cell.SetPort("Y", mod.Signal("y"))
	//
	if n := proveModule(mod, 4); n != 0 {
		t.Errorf("trivially aliased claim should be skipped, got %d", n)
	}
	// The claim itself is left untouched.
	if cell.Port("B").Equals(cell.Port("A")) {
		t.Errorf("skipped claim should keep its original operands")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// claimModule builds a module where wires a and b both carry !x, with a
// $equiv claim between them.
func claimModule() *rtl.Module {
	mod := rtl.NewModule("m")
	mod.AddWire("x", 1)
	mod.AddWire("a", 1)
	mod.AddWire("b", 1)
	mod.AddWire("y", 1)
	//
	g1 := mod.AddCell("g1", "$not")
	g1.SetPort("A", mod.Signal("x"))
	g1.SetPort("Y", mod.Signal("a"))
	//
	g2 := mod.AddCell("g2", "$not")
	g2.SetPort("A", mod.Signal("x"))
	g2.SetPort("Y", mod.Signal("b"))
	//
	e1 := mod.AddCell("e1", "$equiv")
	e1.SetPort("A", mod.Signal("a"))
	e1.SetPort("B", mod.Signal("b"))
	e1.SetPort("Y", mod.Signal("y"))
	//
	return mod
}
