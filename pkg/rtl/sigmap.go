package rtl

// SigMap maps signal bits to canonical representatives, resolving the
// aliasing introduced by a module's connections.  Two textually different
// signal references which carry the same value map to the same SigBit.
//
// Representative choice is arbitrary but stable for the lifetime of the
// map.  Constant bits are always their own representatives, and unioning a
// wire bit with a constant selects the constant.
type SigMap struct {
	parent map[SigBit]SigBit
}

// NewSigMap builds a canonicaliser from the alias connections of the given
// module.
func NewSigMap(mod *Module) *SigMap {
	sm := &SigMap{parent: make(map[SigBit]SigBit)}
	//
	for _, conn := range mod.Connections {
		for i := range conn.Lhs {
			sm.union(conn.Lhs[i], conn.Rhs[i])
		}
	}
	//
	return sm
}

// Apply returns the canonical representative of the given bit.
func (sm *SigMap) Apply(bit SigBit) SigBit {
	root := bit

	for {
		next, ok := sm.parent[root]
		if !ok {
			break
		}

		root = next
	}
	// Path compression
	for bit != root {
		next := sm.parent[bit]
		sm.parent[bit] = root
		bit = next
	}

	return root
}

// ApplySpec canonicalises every bit of a signal.
func (sm *SigMap) ApplySpec(spec SigSpec) SigSpec {
	result := make(SigSpec, len(spec))
	for i, b := range spec {
		result[i] = sm.Apply(b)
	}

	return result
}

func (sm *SigMap) union(a SigBit, b SigBit) {
	ra, rb := sm.Apply(a), sm.Apply(b)
	//
	if ra == rb {
		return
	}
	// Constants must remain roots.
	if ra.IsConst() {
		ra, rb = rb, ra
	} else if !rb.IsConst() && ra.String() < rb.String() {
		// Prefer the lexicographically smaller name as representative so
		// that repeated construction yields identical maps.
		ra, rb = rb, ra
	}

	sm.parent[ra] = rb
}
