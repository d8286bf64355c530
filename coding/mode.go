// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Mode is a QR data encoding mode.
type Mode int

// Encoding modes.  Only Numeric, Alphanumeric, Byte and Kanji carry
// data in codes produced by this package; ECI precedes Byte mode data
// in other character sets.
const (
	Terminator Mode = iota
	Numeric
	Alphanumeric
	StructuredAppend
	Byte
	ECI
	Kanji
	FNC1First
	FNC1Second
	Hanzi
)

// Mode constants, indexed by Mode.
var modes = [...]struct {
	name      string
	indicator uint32
	count     [3]int // character count bits per size class
}{
	Terminator:       {"terminator", 0x0, [3]int{0, 0, 0}},
	Numeric:          {"numeric", 0x1, [3]int{10, 12, 14}},
	Alphanumeric:     {"alphanumeric", 0x2, [3]int{9, 11, 13}},
	StructuredAppend: {"structured-append", 0x3, [3]int{0, 0, 0}},
	Byte:             {"byte", 0x4, [3]int{8, 16, 16}},
	ECI:              {"eci", 0x7, [3]int{0, 0, 0}},
	Kanji:            {"kanji", 0x8, [3]int{8, 10, 12}},
	FNC1First:        {"fnc1-in-1st-position", 0x5, [3]int{0, 0, 0}},
	FNC1Second:       {"fnc1-in-2nd-position", 0x9, [3]int{0, 0, 0}},
	// GB/T 18284-2000
	Hanzi: {"hanzi", 0xd, [3]int{8, 10, 12}},
}

var ErrMode = errors.New("qr: invalid mode")

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modes) {
		return modes[m].name
	}
	return strconv.Itoa(int(m))
}

func validMode(m Mode) bool { return m >= 0 && int(m) < len(modes) }

// ModeIndicator returns the 4 bit mode indicator of m.
func ModeIndicator(m Mode) uint32 {
	if !validMode(m) {
		panic("qr: invalid mode " + strconv.Itoa(int(m)))
	}
	return modes[m].indicator
}

// CharCountBits returns the length in bits of the character count
// field of m in version v.
func CharCountBits(m Mode, v Version) int {
	if !validMode(m) {
		panic("qr: invalid mode " + strconv.Itoa(int(m)))
	}
	return modes[m].count[sizeClass(v)]
}

// sizeClass returns 0 for versions 1 to 9, 1 for versions 10 to 26
// and 2 for versions 27 to 40.
func sizeClass(v Version) int {
	if v <= 9 {
		return 0
	}
	if v <= 26 {
		return 1
	}
	return 2
}
