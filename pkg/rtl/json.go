package rtl

import (
	"encoding/json"
	"fmt"
	"sort"
)

// The JSON netlist format is a compact, flattened description of a design:
//
//	{
//	  "modules": {
//	    "top": {
//	      "wires": { "a": {"width": 4}, ... },
//	      "cells": {
//	        "c1": {
//	          "type": "$and",
//	          "parameters": {"A_SIGNED": 0, ...},
//	          "connections": {"A": ["a[0]","a[1]"], "Y": ["y"]}
//	        }, ...
//	      },
//	      "connections": [ [["a[0]"], ["b[0]"]], ... ]
//	    }
//	  }
//	}
//
// Signal bits are strings: "0", "1" and "x" denote constants, "w" denotes
// bit zero of wire w, and "w[i]" denotes bit i.

type jsonDesign struct {
	Modules map[string]*jsonModule `json:"modules"`
}

type jsonModule struct {
	Wires       map[string]*jsonWire `json:"wires"`
	Cells       map[string]*jsonCell `json:"cells,omitempty"`
	Connections [][2][]string        `json:"connections,omitempty"`
}

type jsonWire struct {
	Width int `json:"width"`
}

type jsonCell struct {
	Type        string              `json:"type"`
	Parameters  map[string]int      `json:"parameters,omitempty"`
	Connections map[string][]string `json:"connections"`
}

// ParseDesign reads a design from its JSON netlist form.
func ParseDesign(data []byte) (*Design, error) {
	var jd jsonDesign
	//
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, err
	}
	//
	design := NewDesign()
	//
	for modName, jm := range jd.Modules {
		mod := design.AddModule(modName)
		// Wires must exist before any signal can be parsed.
		for _, jw := range sortedItems(jm.Wires) {
			mod.AddWire(jw.key, jw.value.Width)
		}
		//
		for _, jc := range sortedItems(jm.Cells) {
			cell := mod.AddCell(jc.key, jc.value.Type)
			//
			for param, val := range jc.value.Parameters {
				cell.Parameters[param] = val
			}
			//
			for port, bits := range jc.value.Connections {
				sig, err := parseSpec(mod, bits)
				if err != nil {
					return nil, fmt.Errorf("cell %s port %s: %w", jc.key, port, err)
				}

				cell.Connections[port] = sig
			}
		}
		//
		for _, pair := range jm.Connections {
			lhs, err := parseSpec(mod, pair[0])
			if err != nil {
				return nil, err
			}

			rhs, err := parseSpec(mod, pair[1])
			if err != nil {
				return nil, err
			}

			if len(lhs) != len(rhs) {
				return nil, fmt.Errorf("connection width mismatch in module %s", modName)
			}

			mod.Connect(lhs, rhs)
		}
	}
	//
	return design, nil
}

// MarshalDesign writes a design back into its JSON netlist form, e.g. to
// persist port rewrites performed by a pass.
func MarshalDesign(design *Design) ([]byte, error) {
	jd := jsonDesign{Modules: make(map[string]*jsonModule)}
	//
	for _, name := range design.ModuleNames() {
		mod := design.Modules[name]
		jm := &jsonModule{Wires: make(map[string]*jsonWire), Cells: make(map[string]*jsonCell)}
		//
		for wname, w := range mod.Wires {
			jm.Wires[wname] = &jsonWire{Width: w.Width}
		}
		//
		for _, cell := range mod.Cells() {
			jc := &jsonCell{
				Type:        cell.Type,
				Connections: make(map[string][]string),
			}
			//
			if len(cell.Parameters) > 0 {
				jc.Parameters = cell.Parameters
			}
			//
			for port, sig := range cell.Connections {
				jc.Connections[port] = formatSpec(sig)
			}
			//
			jm.Cells[cell.Name] = jc
		}
		//
		for _, conn := range mod.Connections {
			jm.Connections = append(jm.Connections, [2][]string{formatSpec(conn.Lhs), formatSpec(conn.Rhs)})
		}
		//
		jd.Modules[name] = jm
	}
	//
	return json.MarshalIndent(jd, "", "  ")
}

func parseSpec(mod *Module, bits []string) (SigSpec, error) {
	sig := make(SigSpec, len(bits))
	//
	for i, text := range bits {
		bit, err := ParseBit(mod, text)
		if err != nil {
			return nil, err
		}

		sig[i] = bit
	}
	//
	return sig, nil
}

func formatSpec(sig SigSpec) []string {
	bits := make([]string, len(sig))
	//
	for i, b := range sig {
		if b.Wire != nil && b.Wire.Width == 1 {
			bits[i] = b.Wire.Name
		} else if b.Wire != nil {
			bits[i] = fmt.Sprintf("%s[%d]", b.Wire.Name, b.Offset)
		} else {
			bits[i] = b.State.String()
		}
	}
	//
	return bits
}

type item[T any] struct {
	key   string
	value T
}

// sortedItems returns map entries ordered by key, so that design
// construction (and hence cell iteration order) is deterministic.
func sortedItems[T any](m map[string]T) []item[T] {
	items := make([]item[T], 0, len(m))
	for k, v := range m {
		items = append(items, item[T]{k, v})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })

	return items
}
