// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Total penalty is the sum of penalties for runs and boxes
// of same-colour modules, finder patterns and colour balance.
//
//   - RunP: for runs of n modules, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for possibly overlapping finder patterns -> 40
//     The pattern is 1011101 with 0000 on either side; the light
//     modules may be cut short by the edge of the symbol
//   - BalP: for n% of dark modules -> 10*floor(abs(n-50)/5)
const (
	MinRun  = 5  // RunP:  minimum run length
	RunPP   = 3  // RunP:  points for a run of MinRun
	BoxPP   = 3  // BoxP:  points per box
	FindPP  = 40 // FindP: points per pattern
	BalPP   = 10 // BalP:  10 points
	BalPMul = 20 //        for every 5% (1/20)
)

// Penalty returns the penalty value of a complete symbol.  The mask
// with the lowest value is used.
func Penalty(g *ModuleGrid) int {
	return RunPenalty(g) + BoxPenalty(g) + FinderPenalty(g) +
		BalancePenalty(g)
}

// RunPenalty returns the penalty for horizontal and vertical runs of
// same-colour modules.
func RunPenalty(g *ModuleGrid) int {
	return runPenalty(g, false) + runPenalty(g, true)
}

func runPenalty(g *ModuleGrid, vertical bool) int {
	p := 0
	siz := g.size
	for i := 0; i < siz; i++ {
		r := 0
		var prev Cell
		for j := 0; j < siz; j++ {
			c := g.At(j, i)
			if vertical {
				c = g.At(i, j)
			}
			if c == prev {
				r++
				continue
			}
			if r >= MinRun {
				p += RunPP + r - MinRun
			}
			r, prev = 1, c
		}
		if r >= MinRun {
			p += RunPP + r - MinRun
		}
	}
	return p
}

// BoxPenalty returns the penalty for 2×2 boxes of same-colour modules.
func BoxPenalty(g *ModuleGrid) int {
	n := 0
	siz := g.size
	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			c := g.At(x, y)
			if c == g.At(x+1, y) && c == g.At(x, y+1) &&
				c == g.At(x+1, y+1) {
				n++
			}
		}
	}
	return n * BoxPP
}

// FinderPenalty returns the penalty for horizontal and vertical
// patterns resembling the finder pattern.
func FinderPenalty(g *ModuleGrid) int {
	n := 0
	siz := g.size
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if x+6 < siz && finderAt(g, x, y, 1, 0) &&
				(light(g, x-4, y, x, y+1) || light(g, x+7, y, x+11, y+1)) {
				n++
			}
			if y+6 < siz && finderAt(g, x, y, 0, 1) &&
				(light(g, x, y-4, x+1, y) || light(g, x, y+7, x+1, y+11)) {
				n++
			}
		}
	}
	return n * FindPP
}

// finderAt reports whether the 7 modules from (x, y) in direction
// (dx, dy) are dark-light-dark-dark-dark-light-dark.
func finderAt(g *ModuleGrid, x, y, dx, dy int) bool {
	const pattern = 0b1011101
	for i := 0; i < 7; i++ {
		if g.Black(x+i*dx, y+i*dy) != (pattern>>(6-i)&1 != 0) {
			return false
		}
	}
	return true
}

// light reports whether the part of the rectangle [x0,x1)×[y0,y1)
// inside the symbol is all light.
func light(g *ModuleGrid, x0, y0, x1, y1 int) bool {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.size), min(y1, g.size)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if g.At(x, y) == Black {
				return false
			}
		}
	}
	return true
}

// BalancePenalty returns the penalty for the deviation of the
// proportion of dark modules from one half.
func BalancePenalty(g *ModuleGrid) int {
	dark := 0
	for _, c := range g.cells {
		if c == Black {
			dark++
		}
	}
	total := len(g.cells)
	d := dark*2 - total
	if d < 0 {
		d = -d
	}
	return d * BalPMul / 2 / total * BalPP
}
