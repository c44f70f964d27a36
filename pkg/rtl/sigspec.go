package rtl

import (
	"fmt"
	"strconv"
	"strings"
)

// State describes the value of a constant bit.
type State int

// Constant bit states.  Sx means undefined / don't care.
const (
	S0 State = iota
	S1
	Sx
)

func (s State) String() string {
	switch s {
	case S0:
		return "0"
	case S1:
		return "1"
	default:
		return "x"
	}
}

// SigBit identifies a single bit of a signal: either one bit of a named
// wire, or a constant state.  SigBit is a comparable value type; two
// SigBits are the same signal exactly when they are equal.
type SigBit struct {
	// Wire is nil for constant bits.
	Wire *Wire
	// Offset is the bit position within the wire.
	Offset int
	// State holds the constant value when Wire is nil.
	State State
}

// IsConst reports whether this bit is a constant.
func (b SigBit) IsConst() bool {
	return b.Wire == nil
}

func (b SigBit) String() string {
	if b.Wire == nil {
		return b.State.String()
	}

	if b.Wire.Width == 1 {
		return b.Wire.Name
	}

	return fmt.Sprintf("%s[%d]", b.Wire.Name, b.Offset)
}

// SigSpec is a bit vector of signal references, least significant bit
// first.
type SigSpec []SigBit

// NewConstSpec constructs a width-bit constant signal where every bit has
// the given state.
func NewConstSpec(state State, width int) SigSpec {
	spec := make(SigSpec, width)
	for i := range spec {
		spec[i] = SigBit{State: state}
	}

	return spec
}

// Equals checks whether two signals reference exactly the same bits.
func (s SigSpec) Equals(other SigSpec) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

// IsFullyConst reports whether every bit of this signal is a constant.
func (s SigSpec) IsFullyConst() bool {
	for _, b := range s {
		if !b.IsConst() {
			return false
		}
	}

	return true
}

// IsFullyZero reports whether every bit of this signal is the constant 0.
func (s SigSpec) IsFullyZero() bool {
	for _, b := range s {
		if !b.IsConst() || b.State != S0 {
			return false
		}
	}

	return true
}

// ToSingleBit returns the sole bit of a one-bit signal, panicking
// otherwise.  Callers which require single-bit operands (e.g. $equiv
// comparisons) rely on this contract check.
func (s SigSpec) ToSingleBit() SigBit {
	if len(s) != 1 {
		panic(fmt.Sprintf("expected single-bit signal, got %d bits (%s)", len(s), s))
	}

	return s[0]
}

func (s SigSpec) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}

	return strings.Join(parts, ",")
}

// ParseBit parses the textual form of a single signal bit within the given
// module: "0", "1", "x" for constants, "name" for bit 0 of a wire, or
// "name[i]" for bit i.
func ParseBit(mod *Module, text string) (SigBit, error) {
	switch text {
	case "0":
		return SigBit{State: S0}, nil
	case "1":
		return SigBit{State: S1}, nil
	case "x":
		return SigBit{State: Sx}, nil
	}
	//
	name, offset := text, 0
	//
	if i := strings.IndexByte(text, '['); i >= 0 {
		if !strings.HasSuffix(text, "]") {
			return SigBit{}, fmt.Errorf("malformed signal bit %q", text)
		}

		n, err := strconv.Atoi(text[i+1 : len(text)-1])
		if err != nil {
			return SigBit{}, fmt.Errorf("malformed signal bit %q", text)
		}

		name, offset = text[:i], n
	}
	// Look up enclosing wire
	wire, ok := mod.Wires[name]
	if !ok {
		return SigBit{}, fmt.Errorf("unknown wire %q in module %s", name, mod.Name)
	} else if offset < 0 || offset >= wire.Width {
		return SigBit{}, fmt.Errorf("bit %d out of range for wire %s (width %d)", offset, name, wire.Width)
	}

	return SigBit{Wire: wire, Offset: offset}, nil
}
