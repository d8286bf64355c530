// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package bitmatrix implements a two-dimensional matrix of bits.

Each row starts at a new uint32 word, bit x of a row is bit x%32 of
word x/32.  The origin is at the top left, x is the column and y the
row.
*/
package bitmatrix // import "github.com/vanstone/qr/bitmatrix"

import (
	"image"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrDimension = errors.New("qr: matrix dimensions must be positive")
	ErrMismatch  = errors.New("qr: matrix dimensions do not match")
	ErrRegion    = errors.New("qr: invalid region")
	ErrParse     = errors.New("qr: invalid matrix representation")
)

// A BitMatrix is a width×height grid of bits packed 32 to a word.
type BitMatrix struct {
	width   int
	height  int
	rowSize int // words per row
	bits    []uint32
}

// New returns an empty width×height BitMatrix.
func New(width, height int) (*BitMatrix, error) {
	if width < 1 || height < 1 {
		return nil, ErrDimension
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		bits:    make([]uint32, rowSize*height),
	}, nil
}

// NewSquare returns an empty dim×dim BitMatrix.
func NewSquare(dim int) (*BitMatrix, error) { return New(dim, dim) }

func (m *BitMatrix) Width() int   { return m.width }
func (m *BitMatrix) Height() int  { return m.height }
func (m *BitMatrix) RowSize() int { return m.rowSize }

func (m *BitMatrix) offset(x, y int) int { return y*m.rowSize + x>>5 }

// Get reports whether the bit at (x, y) is set.
func (m *BitMatrix) Get(x, y int) bool {
	return m.bits[m.offset(x, y)]>>(x&0x1f)&1 != 0
}

// Set sets the bit at (x, y).
func (m *BitMatrix) Set(x, y int) { m.bits[m.offset(x, y)] |= 1 << (x & 0x1f) }

// Unset clears the bit at (x, y).
func (m *BitMatrix) Unset(x, y int) { m.bits[m.offset(x, y)] &^= 1 << (x & 0x1f) }

// Flip inverts the bit at (x, y).
func (m *BitMatrix) Flip(x, y int) { m.bits[m.offset(x, y)] ^= 1 << (x & 0x1f) }

// Clear clears all bits.
func (m *BitMatrix) Clear() {
	for i := range m.bits {
		m.bits[i] = 0
	}
}

// Xor flips every bit of m that is set in mask.
func (m *BitMatrix) Xor(mask *BitMatrix) error {
	if m.width != mask.width || m.height != mask.height ||
		m.rowSize != mask.rowSize {
		return ErrMismatch
	}
	for i, v := range mask.bits {
		m.bits[i] ^= v
	}
	return nil
}

// SetRegion sets all bits of the width×height rectangle with the top
// left corner at (left, top).  The region must lie inside m.
func (m *BitMatrix) SetRegion(left, top, width, height int) error {
	if left < 0 || top < 0 || width < 1 || height < 1 {
		return ErrRegion
	}
	right, bottom := left+width, top+height
	if right > m.width || bottom > m.height {
		return errors.Wrapf(ErrRegion, "%dx%d at (%d, %d) in %dx%d matrix",
			width, height, left, top, m.width, m.height)
	}
	for y := top; y < bottom; y++ {
		row := m.bits[y*m.rowSize : (y+1)*m.rowSize]
		for x := left; x < right; {
			// fill up to the end of the word at once
			end := min(right, x&^0x1f+32)
			row[x>>5] |= uint32(1<<(end-x)-1) << (x & 0x1f)
			x = end
		}
	}
	return nil
}

// Row returns the words of row y, reusing row if it is large enough.
func (m *BitMatrix) Row(y int, row []uint32) []uint32 {
	if cap(row) < m.rowSize {
		row = make([]uint32, m.rowSize)
	}
	row = row[:m.rowSize]
	copy(row, m.bits[y*m.rowSize:])
	return row
}

// SetRow replaces row y with the words of row.
func (m *BitMatrix) SetRow(y int, row []uint32) {
	copy(m.bits[y*m.rowSize:(y+1)*m.rowSize], row)
}

// reverse reverses the order of the first n bits in row.
func reverse(row []uint32, n int) {
	last := (n - 1) >> 5
	for i, j := 0, last; i <= j; i, j = i+1, j-1 {
		row[i], row[j] = bits.Reverse32(row[j]), bits.Reverse32(row[i])
	}
	// The reversed bits are now aligned to the end of the last word;
	// shift them down to start at bit 0.
	if shift := uint(last+1)<<5 - uint(n); shift != 0 {
		for i := 0; i < last; i++ {
			row[i] = row[i]>>shift | row[i+1]<<(32-shift)
		}
		row[last] >>= shift
	}
}

// Rotate180 rotates m by 180 degrees in place.
func (m *BitMatrix) Rotate180() {
	top := make([]uint32, m.rowSize)
	bottom := make([]uint32, m.rowSize)
	for i, j := 0, m.height-1; i <= j; i, j = i+1, j-1 {
		top = m.Row(i, top)
		bottom = m.Row(j, bottom)
		reverse(top, m.width)
		reverse(bottom, m.width)
		m.SetRow(i, bottom)
		m.SetRow(j, top)
	}
}

// EnclosingRectangle returns the smallest rectangle containing all set
// bits, or an empty rectangle if no bit is set.
func (m *BitMatrix) EnclosingRectangle() image.Rectangle {
	left, top := m.width, m.height
	right, bottom := -1, -1
	for y := 0; y < m.height; y++ {
		for x32, v := range m.bits[y*m.rowSize : (y+1)*m.rowSize] {
			if v == 0 {
				continue
			}
			top = min(top, y)
			bottom = max(bottom, y)
			left = min(left, x32<<5+bits.TrailingZeros32(v))
			right = max(right, x32<<5+31-bits.LeadingZeros32(v))
		}
	}
	if right < left {
		return image.Rectangle{}
	}
	return image.Rect(left, top, right+1, bottom+1)
}

// TopLeftOnBit returns the coordinates of the first set bit in row-major
// order.  The second result is false if no bit is set.
func (m *BitMatrix) TopLeftOnBit() (image.Point, bool) {
	for i, v := range m.bits {
		if v != 0 {
			return image.Pt(i%m.rowSize<<5+bits.TrailingZeros32(v),
				i/m.rowSize), true
		}
	}
	return image.Point{}, false
}

// BottomRightOnBit returns the coordinates of the last set bit in
// row-major order.  The second result is false if no bit is set.
func (m *BitMatrix) BottomRightOnBit() (image.Point, bool) {
	for i := len(m.bits) - 1; i >= 0; i-- {
		if v := m.bits[i]; v != 0 {
			return image.Pt(i%m.rowSize<<5+31-bits.LeadingZeros32(v),
				i/m.rowSize), true
		}
	}
	return image.Point{}, false
}

// Equal reports whether m and o have the same dimensions and bits.
func (m *BitMatrix) Equal(o *BitMatrix) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, v := range m.bits {
		if o.bits[i] != v {
			return false
		}
	}
	return true
}

// Clone returns a copy of m.
func (m *BitMatrix) Clone() *BitMatrix {
	c := *m
	c.bits = append([]uint32(nil), m.bits...)
	return &c
}

// String returns m as rows of "X " for set and "  " for unset bits.
func (m *BitMatrix) String() string { return m.Format("X ", "  ") }

// Format returns m as rows of set and unset strings.
func (m *BitMatrix) Format(set, unset string) string {
	var b strings.Builder
	b.Grow(m.height * (m.width*max(len(set), len(unset)) + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				b.WriteString(set)
			} else {
				b.WriteString(unset)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse parses the output of Format with the same set and unset
// strings, which must be non-empty and of equal length.
func Parse(s, set, unset string) (*BitMatrix, error) {
	n := len(set)
	if n == 0 || n != len(unset) || set == unset {
		return nil, ErrParse
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	width := len(lines[0]) / n
	m, err := New(width, len(lines))
	if err != nil {
		return nil, ErrParse
	}
	for y, line := range lines {
		if len(line) != width*n {
			return nil, errors.Wrapf(ErrParse, "line %d: length %d", y+1, len(line))
		}
		for x := 0; x < width; x++ {
			switch line[x*n : x*n+n] {
			case set:
				m.Set(x, y)
			case unset:
			default:
				return nil, errors.Wrapf(ErrParse, "line %d, column %d", y+1, x+1)
			}
		}
	}
	return m, nil
}
