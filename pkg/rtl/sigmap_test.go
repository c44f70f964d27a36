package rtl

import (
	"testing"
)

func Test_SigMap_01(t *testing.T) {
	mod := NewModule("m")
	mod.AddWire("a", 1)
	mod.AddWire("b", 1)
	mod.Connect(mod.Signal("b"), mod.Signal("a"))
	//
	sigmap := NewSigMap(mod)
	//
	if sigmap.Apply(mod.Bit("a", 0)) != sigmap.Apply(mod.Bit("b", 0)) {
		t.Errorf("aliased bits have different representatives")
	}
}

func Test_SigMap_02(t *testing.T) {
	mod := NewModule("m")
	mod.AddWire("a", 1)
	mod.AddWire("b", 1)
	mod.AddWire("c", 1)
	// Transitive aliasing: c = b = a.
	mod.Connect(mod.Signal("b"), mod.Signal("a"))
	mod.Connect(mod.Signal("c"), mod.Signal("b"))
	//
	sigmap := NewSigMap(mod)
	rep := sigmap.Apply(mod.Bit("a", 0))
	//
	if sigmap.Apply(mod.Bit("b", 0)) != rep || sigmap.Apply(mod.Bit("c", 0)) != rep {
		t.Errorf("transitive aliases have different representatives")
	}
}

func Test_SigMap_03(t *testing.T) {
	mod := NewModule("m")
	mod.AddWire("a", 1)
	mod.Connect(mod.Signal("a"), SigSpec{{State: S1}})
	//
	sigmap := NewSigMap(mod)
	//
	if sigmap.Apply(mod.Bit("a", 0)) != (SigBit{State: S1}) {
		t.Errorf("bit tied to constant should canonicalise to the constant")
	}
}

func Test_SigMap_04(t *testing.T) {
	mod := NewModule("m")
	mod.AddWire("a", 2)
	mod.AddWire("b", 2)
	mod.Connect(mod.Signal("b"), mod.Signal("a"))
	//
	sigmap := NewSigMap(mod)
	spec := sigmap.ApplySpec(mod.Signal("b"))
	//
	if !spec.Equals(sigmap.ApplySpec(mod.Signal("a"))) {
		t.Errorf("bitwise canonicalisation mismatch: %s", spec)
	}
}

func Test_SigMap_05(t *testing.T) {
	mod := NewModule("m")
	mod.AddWire("a", 1)
	mod.AddWire("b", 1)
	//
	sigmap := NewSigMap(mod)
	// Unrelated bits keep distinct identities.
	if sigmap.Apply(mod.Bit("a", 0)) == sigmap.Apply(mod.Bit("b", 0)) {
		t.Errorf("unrelated bits share a representative")
	}
}
