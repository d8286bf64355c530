// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// Position detection (finder) pattern, 1 is black.
var finder = [7][7]byte{
	{1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1},
}

// Alignment pattern, 1 is black.
var alignment = [5][5]byte{
	{1, 1, 1, 1, 1},
	{1, 0, 0, 0, 1},
	{1, 0, 1, 0, 1},
	{1, 0, 0, 0, 1},
	{1, 1, 1, 1, 1},
}

// Coordinates of the first copy of format information, least
// significant bit first.
var formatCoords = [15][2]int{
	{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
	{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
}

const (
	formatPoly  = 0x537  // x¹⁰+x⁸+x⁵+x⁴+x²+x+1
	formatMask  = 0x5412 // 101010000010010
	versionPoly = 0x1f25 // x¹²+x¹¹+x¹⁰+x⁹+x⁸+x⁵+x²+1
)

// bch returns the BCH check bits of v for the generator poly.
func bch(v, poly uint32) uint32 {
	n := bits.Len32(poly)
	v <<= n - 1
	for bits.Len32(v) >= n {
		v ^= poly << (bits.Len32(v) - n)
	}
	return v
}

// FormatBits returns the 15 bit format information for level l and
// mask pattern mask, with error correction and masking applied.
func FormatBits(l Level, mask int) uint32 {
	if mask < 0 || mask > 7 {
		panic("qr: invalid mask pattern")
	}
	v := LevelBits(l)<<3 | uint32(mask)
	return (v<<10 | bch(v, formatPoly)) ^ formatMask
}

// VersionBits returns the 18 bit version information for v, which is
// only present in versions 7 and above.
func VersionBits(v Version) uint32 {
	return uint32(v)<<12 | bch(uint32(v), versionPoly)
}

// buildMatrix lays out a complete symbol in g: function patterns,
// format and version information, and data bits masked with mask.
func buildMatrix(data *Bits, l Level, v Version, mask int, g *ModuleGrid) {
	g.Clear()
	embedBasicPatterns(v, g)
	embedFormat(l, mask, g)
	embedVersion(v, g)
	embedData(data, mask, g)
}

// setFunc writes a function pattern module, which must be Empty.
func setFunc(g *ModuleGrid, x, y int, black bool) {
	if g.At(x, y) != Empty {
		panic("qr: internal error: function pattern overlap")
	}
	g.Set(x, y, cell(black))
}

func embedBasicPatterns(v Version, g *ModuleGrid) {
	embedFinders(g)
	// The dark module above the lower left separator.
	setFunc(g, 8, g.size-8, true)
	embedAlignment(v, g)
	embedTiming(g)
}

// embedFinders draws the three finder patterns with their separators.
func embedFinders(g *ModuleGrid) {
	siz := g.size
	for _, o := range [3][2]int{{0, 0}, {siz - 7, 0}, {0, siz - 7}} {
		for y, row := range finder {
			for x, b := range row {
				setFunc(g, o[0]+x, o[1]+y, b != 0)
			}
		}
	}
	// horizontal separators
	for x := 0; x < 8; x++ {
		setFunc(g, x, 7, false)
		setFunc(g, siz-8+x, 7, false)
		setFunc(g, x, siz-8, false)
	}
	// vertical separators
	for y := 0; y < 7; y++ {
		setFunc(g, 7, y, false)
		setFunc(g, siz-8, y, false)
		setFunc(g, 7, siz-7+y, false)
	}
}

// embedAlignment draws alignment patterns centred at every pair of
// coordinates, except where they would overlap the finders.
func embedAlignment(v Version, g *ModuleGrid) {
	coords := v.Alignment()
	for _, cy := range coords {
		for _, cx := range coords {
			if g.At(cx, cy) != Empty {
				continue
			}
			for y, row := range alignment {
				for x, b := range row {
					setFunc(g, cx-2+x, cy-2+y, b != 0)
				}
			}
		}
	}
}

// embedTiming draws the timing patterns on row and column 6.
func embedTiming(g *ModuleGrid) {
	for i := 8; i < g.size-8; i++ {
		b := cell(i&1 == 0)
		if g.At(i, 6) == Empty {
			g.Set(i, 6, b)
		}
		if g.At(6, i) == Empty {
			g.Set(6, i, b)
		}
	}
}

// embedFormat writes both copies of format information.
func embedFormat(l Level, mask int, g *ModuleGrid) {
	fb := FormatBits(l, mask)
	siz := g.size
	for i, c := range formatCoords {
		b := cell(fb>>i&1 != 0)
		g.Set(c[0], c[1], b)
		if i < 8 {
			g.Set(siz-1-i, 8, b)
		} else {
			g.Set(8, siz-7+(i-8), b)
		}
	}
}

// embedVersion writes both copies of version information for
// versions 7 and above.
func embedVersion(v Version, g *ModuleGrid) {
	if v < 7 {
		return
	}
	vb := VersionBits(v)
	siz := g.size
	for x := 0; x < 6; x++ {
		for y := 0; y < 3; y++ {
			// least significant bit first
			b := cell(vb>>(x*3+y)&1 != 0)
			g.Set(x, siz-11+y, b)
			g.Set(siz-11+y, x, b)
		}
	}
}

// embedData writes data bits to the Empty modules in zigzag scan
// order: two columns at a time from the right, alternating upwards
// and downwards, skipping the vertical timing pattern.  Modules left
// over after the data are written as 0.  All bits are masked.
func embedData(data *Bits, mask int, g *ModuleGrid) {
	siz := g.size
	n := 0
	dir := -1
	y := siz - 1
	for x := siz - 1; x > 0; x -= 2 {
		if x == 6 {
			x--
		}
		for ; 0 <= y && y < siz; y += dir {
			for xx := x; xx > x-2; xx-- {
				if g.At(xx, y) != Empty {
					continue
				}
				var b bool
				if n < data.Size() {
					b = data.Get(n)
					n++
				}
				if MaskBit(mask, xx, y) {
					b = !b
				}
				g.Set(xx, y, cell(b))
			}
		}
		dir = -dir
		y += dir
	}
	if n != data.Size() {
		panic("qr: internal error: data bits left over")
	}
}

// MaskBit reports whether mask pattern mask inverts the module at
// (x, y).
func MaskBit(mask, x, y int) bool {
	var v int
	switch mask {
	case 0:
		v = (x + y) & 1
	case 1:
		v = y & 1
	case 2:
		v = x % 3
	case 3:
		v = (x + y) % 3
	case 4:
		v = (y/2 + x/3) & 1
	case 5:
		xy := x * y
		v = xy&1 + xy%3
	case 6:
		xy := x * y
		v = (xy&1 + xy%3) & 1
	case 7:
		xy := x * y
		v = (xy%3 + (x+y)&1) & 1
	default:
		panic("qr: invalid mask pattern")
	}
	return v == 0
}
