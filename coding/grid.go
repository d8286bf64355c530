// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"

	"github.com/vanstone/qr/bitmatrix"
)

// A Cell is the state of a module during symbol construction.
type Cell byte

const (
	Empty Cell = iota // not yet written
	White
	Black
)

func cell(black bool) Cell {
	if black {
		return Black
	}
	return White
}

// A ModuleGrid is a square grid of cells.
type ModuleGrid struct {
	size  int
	cells []Cell // row major
}

// NewModuleGrid returns a size×size grid of Empty cells.
func NewModuleGrid(size int) *ModuleGrid {
	return &ModuleGrid{size: size, cells: make([]Cell, size*size)}
}

// Size returns the number of modules on a side.
func (g *ModuleGrid) Size() int { return g.size }

func (g *ModuleGrid) At(x, y int) Cell { return g.cells[y*g.size+x] }

func (g *ModuleGrid) Set(x, y int, c Cell) { g.cells[y*g.size+x] = c }

// Black reports whether the module at (x, y) is black.  Modules
// outside the grid are white.
func (g *ModuleGrid) Black(x, y int) bool {
	return 0 <= x && x < g.size && 0 <= y && y < g.size &&
		g.cells[y*g.size+x] == Black
}

// Clear sets all cells to Empty.
func (g *ModuleGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// BitMatrix returns g as a BitMatrix with black modules set.
func (g *ModuleGrid) BitMatrix() *bitmatrix.BitMatrix {
	m, err := bitmatrix.NewSquare(g.size)
	if err != nil {
		panic("qr: internal error: " + err.Error())
	}
	for y := 0; y < g.size; y++ {
		for x, c := range g.cells[y*g.size : (y+1)*g.size] {
			if c == Black {
				m.Set(x, y)
			}
		}
	}
	return m
}

// String returns g with "X " for black, "  " for white and "? " for
// Empty cells, one row per line.
func (g *ModuleGrid) String() string {
	var b strings.Builder
	b.Grow(g.size * (g.size*2 + 1))
	for i, c := range g.cells {
		switch c {
		case Black:
			b.WriteString("X ")
		case White:
			b.WriteString("  ")
		default:
			b.WriteString("? ")
		}
		if i%g.size == g.size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
