package rtl

import (
	"fmt"
	"sort"
)

// Wire is a named bit vector within a module.
type Wire struct {
	Name  string
	Width int
}

// Cell is one operation instance within a module.  Its behaviour is
// determined by its type tag (e.g. "$and", "$dff", "$equiv"), its port
// connections and its parameters (widths, signedness flags).
type Cell struct {
	Name string
	Type string
	// Connections map port names (e.g. "A", "B", "Y") to signals.
	Connections map[string]SigSpec
	// Parameters map parameter names (e.g. "A_WIDTH", "A_SIGNED") to
	// integer values.
	Parameters map[string]int
}

// Port returns the signal connected to the named port, or nil if the port
// is unconnected.
func (c *Cell) Port(name string) SigSpec {
	return c.Connections[name]
}

// SetPort rewrites the signal connected to the named port.
func (c *Cell) SetPort(name string, sig SigSpec) {
	c.Connections[name] = sig
}

// Param returns the named parameter value, or def if absent.
func (c *Cell) Param(name string, def int) int {
	if v, ok := c.Parameters[name]; ok {
		return v
	}

	return def
}

// Connection is an alias pair: every bit of Lhs carries the same value as
// the corresponding bit of Rhs.
type Connection struct {
	Lhs SigSpec
	Rhs SigSpec
}

// Module is a circuit: wires, cells and alias connections.  Cells keep
// their insertion order so that passes iterate deterministically.
type Module struct {
	Name  string
	Wires map[string]*Wire
	// Connections are the alias pairs from which SigMap canonicalisation
	// is derived.
	Connections []Connection

	cells []*Cell
	index map[string]*Cell
}

// NewModule constructs a fresh, empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:  name,
		Wires: make(map[string]*Wire),
		index: make(map[string]*Cell),
	}
}

// AddWire creates a wire with the given name and width.  Adding a
// duplicate name panics, as wire names identify signals.
func (m *Module) AddWire(name string, width int) *Wire {
	if _, ok := m.Wires[name]; ok {
		panic(fmt.Sprintf("duplicate wire %q in module %s", name, m.Name))
	}

	w := &Wire{Name: name, Width: width}
	m.Wires[name] = w

	return w
}

// Bit returns bit offset of the named wire as a one-bit signal.
func (m *Module) Bit(name string, offset int) SigBit {
	w, ok := m.Wires[name]
	if !ok {
		panic(fmt.Sprintf("unknown wire %q in module %s", name, m.Name))
	}

	return SigBit{Wire: w, Offset: offset}
}

// Signal returns the full bit vector of the named wire.
func (m *Module) Signal(name string) SigSpec {
	w, ok := m.Wires[name]
	if !ok {
		panic(fmt.Sprintf("unknown wire %q in module %s", name, m.Name))
	}

	spec := make(SigSpec, w.Width)
	for i := range spec {
		spec[i] = SigBit{Wire: w, Offset: i}
	}

	return spec
}

// AddCell creates a cell of the given type.  Cell names are unique within
// a module.
func (m *Module) AddCell(name string, typ string) *Cell {
	if _, ok := m.index[name]; ok {
		panic(fmt.Sprintf("duplicate cell %q in module %s", name, m.Name))
	}

	c := &Cell{
		Name:        name,
		Type:        typ,
		Connections: make(map[string]SigSpec),
		Parameters:  make(map[string]int),
	}
	m.cells = append(m.cells, c)
	m.index[name] = c

	return c
}

// RemoveCell deletes the given cell from the module.  Removing a cell not
// owned by this module is a no-op.
func (m *Module) RemoveCell(c *Cell) {
	if _, ok := m.index[c.Name]; !ok {
		return
	}

	delete(m.index, c.Name)

	for i, ith := range m.cells {
		if ith == c {
			m.cells = append(m.cells[:i], m.cells[i+1:]...)
			break
		}
	}
}

// Cell returns the named cell, or nil.
func (m *Module) Cell(name string) *Cell {
	return m.index[name]
}

// Cells returns all cells in insertion order.  The returned slice must not
// be mutated.
func (m *Module) Cells() []*Cell {
	return m.cells
}

// Connect records that every bit of lhs aliases the corresponding bit of
// rhs.  Both signals must have the same width.
func (m *Module) Connect(lhs SigSpec, rhs SigSpec) {
	if len(lhs) != len(rhs) {
		panic(fmt.Sprintf("cannot connect %s to %s: width mismatch", lhs, rhs))
	}

	m.Connections = append(m.Connections, Connection{Lhs: lhs, Rhs: rhs})
}

// Design is a set of modules keyed by name.
type Design struct {
	Modules map[string]*Module
}

// NewDesign constructs an empty design.
func NewDesign() *Design {
	return &Design{Modules: make(map[string]*Module)}
}

// AddModule creates a module within this design.
func (d *Design) AddModule(name string) *Module {
	if _, ok := d.Modules[name]; ok {
		panic(fmt.Sprintf("duplicate module %q", name))
	}

	m := NewModule(name)
	d.Modules[name] = m

	return m
}

// ModuleNames returns the names of all modules in sorted order, giving
// passes a deterministic iteration order.
func (d *Design) ModuleNames() []string {
	names := make([]string, 0, len(d.Modules))
	for name := range d.Modules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
