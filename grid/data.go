package grid

import (
	"encoding/json"
	"fmt"
)

// Data is the snapshot record for a grid: configuration plus a flat list
// of cell records. It is the exchange format between the board, the
// snapshot store, and external tooling. Transient search state is never
// part of it.
type Data struct {
	Size          int     `json:"size"`
	CellSize      float64 `json:"cellSize"`
	Autogenerated bool    `json:"autogenerated"`
	// ExtrudeSettings is consumed only by the rendering collaborator and
	// passes through untouched.
	ExtrudeSettings json.RawMessage `json:"extrudeSettings,omitempty"`
	Cells           []CellData      `json:"cells"`
}

// CellData is the persisted form of one cell.
type CellData struct {
	Q        int            `json:"q"`
	R        int            `json:"r"`
	S        int            `json:"s"`
	H        float64        `json:"h"`
	Walkable bool           `json:"walkable"`
	UserData map[string]any `json:"userData,omitempty"`
}

// ToData serializes the grid's configuration and cells.
func (g *Grid) ToData() *Data {
	d := &Data{
		Size:            g.size,
		CellSize:        g.cellSize,
		Autogenerated:   g.autogenerated,
		ExtrudeSettings: g.extrude,
		Cells:           make([]CellData, 0, g.store.Count()),
	}
	g.store.ForEach(func(c *Cell) {
		d.Cells = append(d.Cells, CellData{
			Q:        c.Q,
			R:        c.R,
			S:        c.S,
			H:        c.H,
			Walkable: c.Walkable,
			UserData: c.UserData,
		})
	})
	return d
}

// FromData replaces the grid's contents with the snapshot. The load is
// all-or-nothing: a malformed record fails with a *DataError and leaves
// the prior grid state untouched.
func (g *Grid) FromData(d *Data) error {
	if d == nil {
		return &DataError{Field: "data", Reason: "missing record"}
	}
	if d.CellSize <= 0 {
		return &DataError{Field: "cellSize", Reason: fmt.Sprintf("must be > 0, got %v", d.CellSize)}
	}
	if d.Size < 0 {
		return &DataError{Field: "size", Reason: fmt.Sprintf("must be >= 0, got %d", d.Size)}
	}

	// Build into a fresh store first so validation failures cannot
	// leave a partially applied load behind.
	store := NewStore()
	for _, cd := range d.Cells {
		cell := &Cell{
			Q:        cd.Q,
			R:        cd.R,
			S:        cd.S,
			H:        cd.H,
			Walkable: cd.Walkable,
			UserData: cd.UserData,
		}
		if !store.Add(cell) {
			return &DataError{
				Field:  "cells",
				Reason: fmt.Sprintf("duplicate coordinate (%d,%d)", cd.Q, cd.R),
			}
		}
	}

	g.SetCellSize(d.CellSize)
	g.size = d.Size
	g.autogenerated = d.Autogenerated
	g.extrude = d.ExtrudeSettings
	g.store = store
	return nil
}
