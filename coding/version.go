// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"

	"github.com/pkg/errors"
)

var ErrLevel = errors.New("qr: invalid level")

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15%
	Q              // 25%
	H              // 30%
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Two bit level codes in format information, indexed by Level.
var levelBits = [4]uint32{L: 1, M: 0, Q: 3, H: 2}

// LevelBits returns the two bit code of l in format information.
func LevelBits(l Level) uint32 {
	if l < L || l > H {
		panic("qr: invalid level " + strconv.Itoa(int(l)))
	}
	return levelBits[l]
}

// ParseLevel returns the level named by s, one of "L", "M", "Q" or
// "H" in either case.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "L", "l":
		return L, nil
	case "M", "m":
		return M, nil
	case "Q", "q":
		return Q, nil
	case "H", "h":
		return H, nil
	}
	return 0, errors.Wrapf(ErrLevel, "%q", s)
}

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Valid reports whether v is between MinVersion and MaxVersion.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxVersion }

// An ECBlock describes a group of Reed-Solomon blocks with the same
// number of data codewords.
type ECBlock struct {
	Count         int // number of blocks
	DataCodewords int // data codewords per block
}

// ECBlocks describes the Reed-Solomon blocks of a version at a level.
// The second group is empty or has one more data codeword per block
// than the first.
type ECBlocks struct {
	ECCodewords int // error correction codewords per block
	Groups      [2]ECBlock
}

// NumBlocks returns the total number of blocks.
func (e ECBlocks) NumBlocks() int { return e.Groups[0].Count + e.Groups[1].Count }

// TotalECCodewords returns the number of error correction codewords
// in all blocks.
func (e ECBlocks) TotalECCodewords() int { return e.ECCodewords * e.NumBlocks() }

func (v Version) info() *version {
	if !v.Valid() {
		panic("qr: invalid version " + strconv.Itoa(int(v)))
	}
	return &versions[v]
}

// Dimension returns the number of modules on a side.
func (v Version) Dimension() int { return 17 + 4*int(v) }

// TotalCodewords returns the number of data and error correction
// codewords.
func (v Version) TotalCodewords() int { return v.info().codewords }

// ECBlocks returns the block structure of v at level l.
func (v Version) ECBlocks(l Level) ECBlocks {
	if l < L || l > H {
		panic("qr: invalid level " + strconv.Itoa(int(l)))
	}
	return v.info().level[l]
}

// DataBytes returns the number of data codewords of v at level l.
func (v Version) DataBytes(l Level) int {
	return v.TotalCodewords() - v.ECBlocks(l).TotalECCodewords()
}

// Alignment returns the row and column coordinates of alignment
// pattern centres.  The result must not be modified.
func (v Version) Alignment() []int { return v.info().align }

// A version describes metadata associated with a version.
type version struct {
	codewords int
	align     []int
	level     [4]ECBlocks
}

// Version metadata from ISO/IEC 18004:2015 tables 1, 9 and E.1.
var versions = [MaxVersion + 1]version{
	1: {26, []int{}, [4]ECBlocks{{7, [2]ECBlock{{1, 19}}}, {10, [2]ECBlock{{1, 16}}}, {13, [2]ECBlock{{1, 13}}}, {17, [2]ECBlock{{1, 9}}}}},
	2: {44, []int{6, 18}, [4]ECBlocks{{10, [2]ECBlock{{1, 34}}}, {16, [2]ECBlock{{1, 28}}}, {22, [2]ECBlock{{1, 22}}}, {28, [2]ECBlock{{1, 16}}}}},
	3: {70, []int{6, 22}, [4]ECBlocks{{15, [2]ECBlock{{1, 55}}}, {26, [2]ECBlock{{1, 44}}}, {18, [2]ECBlock{{2, 17}}}, {22, [2]ECBlock{{2, 13}}}}},
	4: {100, []int{6, 26}, [4]ECBlocks{{20, [2]ECBlock{{1, 80}}}, {18, [2]ECBlock{{2, 32}}}, {26, [2]ECBlock{{2, 24}}}, {16, [2]ECBlock{{4, 9}}}}},
	5: {134, []int{6, 30}, [4]ECBlocks{{26, [2]ECBlock{{1, 108}}}, {24, [2]ECBlock{{2, 43}}}, {18, [2]ECBlock{{2, 15}, {2, 16}}}, {22, [2]ECBlock{{2, 11}, {2, 12}}}}},
	6: {172, []int{6, 34}, [4]ECBlocks{{18, [2]ECBlock{{2, 68}}}, {16, [2]ECBlock{{4, 27}}}, {24, [2]ECBlock{{4, 19}}}, {28, [2]ECBlock{{4, 15}}}}},
	7: {196, []int{6, 22, 38}, [4]ECBlocks{{20, [2]ECBlock{{2, 78}}}, {18, [2]ECBlock{{4, 31}}}, {18, [2]ECBlock{{2, 14}, {4, 15}}}, {26, [2]ECBlock{{4, 13}, {1, 14}}}}},
	8: {242, []int{6, 24, 42}, [4]ECBlocks{{24, [2]ECBlock{{2, 97}}}, {22, [2]ECBlock{{2, 38}, {2, 39}}}, {22, [2]ECBlock{{4, 18}, {2, 19}}}, {26, [2]ECBlock{{4, 14}, {2, 15}}}}},
	9: {292, []int{6, 26, 46}, [4]ECBlocks{{30, [2]ECBlock{{2, 116}}}, {22, [2]ECBlock{{3, 36}, {2, 37}}}, {20, [2]ECBlock{{4, 16}, {4, 17}}}, {24, [2]ECBlock{{4, 12}, {4, 13}}}}},
	10: {346, []int{6, 28, 50}, [4]ECBlocks{{18, [2]ECBlock{{2, 68}, {2, 69}}}, {26, [2]ECBlock{{4, 43}, {1, 44}}}, {24, [2]ECBlock{{6, 19}, {2, 20}}}, {28, [2]ECBlock{{6, 15}, {2, 16}}}}},
	11: {404, []int{6, 30, 54}, [4]ECBlocks{{20, [2]ECBlock{{4, 81}}}, {30, [2]ECBlock{{1, 50}, {4, 51}}}, {28, [2]ECBlock{{4, 22}, {4, 23}}}, {24, [2]ECBlock{{3, 12}, {8, 13}}}}},
	12: {466, []int{6, 32, 58}, [4]ECBlocks{{24, [2]ECBlock{{2, 92}, {2, 93}}}, {22, [2]ECBlock{{6, 36}, {2, 37}}}, {26, [2]ECBlock{{4, 20}, {6, 21}}}, {28, [2]ECBlock{{7, 14}, {4, 15}}}}},
	13: {532, []int{6, 34, 62}, [4]ECBlocks{{26, [2]ECBlock{{4, 107}}}, {22, [2]ECBlock{{8, 37}, {1, 38}}}, {24, [2]ECBlock{{8, 20}, {4, 21}}}, {22, [2]ECBlock{{12, 11}, {4, 12}}}}},
	14: {581, []int{6, 26, 46, 66}, [4]ECBlocks{{30, [2]ECBlock{{3, 115}, {1, 116}}}, {24, [2]ECBlock{{4, 40}, {5, 41}}}, {20, [2]ECBlock{{11, 16}, {5, 17}}}, {24, [2]ECBlock{{11, 12}, {5, 13}}}}},
	15: {655, []int{6, 26, 48, 70}, [4]ECBlocks{{22, [2]ECBlock{{5, 87}, {1, 88}}}, {24, [2]ECBlock{{5, 41}, {5, 42}}}, {30, [2]ECBlock{{5, 24}, {7, 25}}}, {24, [2]ECBlock{{11, 12}, {7, 13}}}}},
	16: {733, []int{6, 26, 50, 74}, [4]ECBlocks{{24, [2]ECBlock{{5, 98}, {1, 99}}}, {28, [2]ECBlock{{7, 45}, {3, 46}}}, {24, [2]ECBlock{{15, 19}, {2, 20}}}, {30, [2]ECBlock{{3, 15}, {13, 16}}}}},
	17: {815, []int{6, 30, 54, 78}, [4]ECBlocks{{28, [2]ECBlock{{1, 107}, {5, 108}}}, {28, [2]ECBlock{{10, 46}, {1, 47}}}, {28, [2]ECBlock{{1, 22}, {15, 23}}}, {28, [2]ECBlock{{2, 14}, {17, 15}}}}},
	18: {901, []int{6, 30, 56, 82}, [4]ECBlocks{{30, [2]ECBlock{{5, 120}, {1, 121}}}, {26, [2]ECBlock{{9, 43}, {4, 44}}}, {28, [2]ECBlock{{17, 22}, {1, 23}}}, {28, [2]ECBlock{{2, 14}, {19, 15}}}}},
	19: {991, []int{6, 30, 58, 86}, [4]ECBlocks{{28, [2]ECBlock{{3, 113}, {4, 114}}}, {26, [2]ECBlock{{3, 44}, {11, 45}}}, {26, [2]ECBlock{{17, 21}, {4, 22}}}, {26, [2]ECBlock{{9, 13}, {16, 14}}}}},
	20: {1085, []int{6, 34, 62, 90}, [4]ECBlocks{{28, [2]ECBlock{{3, 107}, {5, 108}}}, {26, [2]ECBlock{{3, 41}, {13, 42}}}, {30, [2]ECBlock{{15, 24}, {5, 25}}}, {28, [2]ECBlock{{15, 15}, {10, 16}}}}},
	21: {1156, []int{6, 28, 50, 72, 94}, [4]ECBlocks{{28, [2]ECBlock{{4, 116}, {4, 117}}}, {26, [2]ECBlock{{17, 42}}}, {28, [2]ECBlock{{17, 22}, {6, 23}}}, {30, [2]ECBlock{{19, 16}, {6, 17}}}}},
	22: {1258, []int{6, 26, 50, 74, 98}, [4]ECBlocks{{28, [2]ECBlock{{2, 111}, {7, 112}}}, {28, [2]ECBlock{{17, 46}}}, {30, [2]ECBlock{{7, 24}, {16, 25}}}, {24, [2]ECBlock{{34, 13}}}}},
	23: {1364, []int{6, 30, 54, 78, 102}, [4]ECBlocks{{30, [2]ECBlock{{4, 121}, {5, 122}}}, {28, [2]ECBlock{{4, 47}, {14, 48}}}, {30, [2]ECBlock{{11, 24}, {14, 25}}}, {30, [2]ECBlock{{16, 15}, {14, 16}}}}},
	24: {1474, []int{6, 28, 54, 80, 106}, [4]ECBlocks{{30, [2]ECBlock{{6, 117}, {4, 118}}}, {28, [2]ECBlock{{6, 45}, {14, 46}}}, {30, [2]ECBlock{{11, 24}, {16, 25}}}, {30, [2]ECBlock{{30, 16}, {2, 17}}}}},
	25: {1588, []int{6, 32, 58, 84, 110}, [4]ECBlocks{{26, [2]ECBlock{{8, 106}, {4, 107}}}, {28, [2]ECBlock{{8, 47}, {13, 48}}}, {30, [2]ECBlock{{7, 24}, {22, 25}}}, {30, [2]ECBlock{{22, 15}, {13, 16}}}}},
	26: {1706, []int{6, 30, 58, 86, 114}, [4]ECBlocks{{28, [2]ECBlock{{10, 114}, {2, 115}}}, {28, [2]ECBlock{{19, 46}, {4, 47}}}, {28, [2]ECBlock{{28, 22}, {6, 23}}}, {30, [2]ECBlock{{33, 16}, {4, 17}}}}},
	27: {1828, []int{6, 34, 62, 90, 118}, [4]ECBlocks{{30, [2]ECBlock{{8, 122}, {4, 123}}}, {28, [2]ECBlock{{22, 45}, {3, 46}}}, {30, [2]ECBlock{{8, 23}, {26, 24}}}, {30, [2]ECBlock{{12, 15}, {28, 16}}}}},
	28: {1921, []int{6, 26, 50, 74, 98, 122}, [4]ECBlocks{{30, [2]ECBlock{{3, 117}, {10, 118}}}, {28, [2]ECBlock{{3, 45}, {23, 46}}}, {30, [2]ECBlock{{4, 24}, {31, 25}}}, {30, [2]ECBlock{{11, 15}, {31, 16}}}}},
	29: {2051, []int{6, 30, 54, 78, 102, 126}, [4]ECBlocks{{30, [2]ECBlock{{7, 116}, {7, 117}}}, {28, [2]ECBlock{{21, 45}, {7, 46}}}, {30, [2]ECBlock{{1, 23}, {37, 24}}}, {30, [2]ECBlock{{19, 15}, {26, 16}}}}},
	30: {2185, []int{6, 26, 52, 78, 104, 130}, [4]ECBlocks{{30, [2]ECBlock{{5, 115}, {10, 116}}}, {28, [2]ECBlock{{19, 47}, {10, 48}}}, {30, [2]ECBlock{{15, 24}, {25, 25}}}, {30, [2]ECBlock{{23, 15}, {25, 16}}}}},
	31: {2323, []int{6, 30, 56, 82, 108, 134}, [4]ECBlocks{{30, [2]ECBlock{{13, 115}, {3, 116}}}, {28, [2]ECBlock{{2, 46}, {29, 47}}}, {30, [2]ECBlock{{42, 24}, {1, 25}}}, {30, [2]ECBlock{{23, 15}, {28, 16}}}}},
	32: {2465, []int{6, 34, 60, 86, 112, 138}, [4]ECBlocks{{30, [2]ECBlock{{17, 115}}}, {28, [2]ECBlock{{10, 46}, {23, 47}}}, {30, [2]ECBlock{{10, 24}, {35, 25}}}, {30, [2]ECBlock{{19, 15}, {35, 16}}}}},
	33: {2611, []int{6, 30, 58, 86, 114, 142}, [4]ECBlocks{{30, [2]ECBlock{{17, 115}, {1, 116}}}, {28, [2]ECBlock{{14, 46}, {21, 47}}}, {30, [2]ECBlock{{29, 24}, {19, 25}}}, {30, [2]ECBlock{{11, 15}, {46, 16}}}}},
	34: {2761, []int{6, 34, 62, 90, 118, 146}, [4]ECBlocks{{30, [2]ECBlock{{13, 115}, {6, 116}}}, {28, [2]ECBlock{{14, 46}, {23, 47}}}, {30, [2]ECBlock{{44, 24}, {7, 25}}}, {30, [2]ECBlock{{59, 16}, {1, 17}}}}},
	35: {2876, []int{6, 30, 54, 78, 102, 126, 150}, [4]ECBlocks{{30, [2]ECBlock{{12, 121}, {7, 122}}}, {28, [2]ECBlock{{12, 47}, {26, 48}}}, {30, [2]ECBlock{{39, 24}, {14, 25}}}, {30, [2]ECBlock{{22, 15}, {41, 16}}}}},
	36: {3034, []int{6, 24, 50, 76, 102, 128, 154}, [4]ECBlocks{{30, [2]ECBlock{{6, 121}, {14, 122}}}, {28, [2]ECBlock{{6, 47}, {34, 48}}}, {30, [2]ECBlock{{46, 24}, {10, 25}}}, {30, [2]ECBlock{{2, 15}, {64, 16}}}}},
	37: {3196, []int{6, 28, 54, 80, 106, 132, 158}, [4]ECBlocks{{30, [2]ECBlock{{17, 122}, {4, 123}}}, {28, [2]ECBlock{{29, 46}, {14, 47}}}, {30, [2]ECBlock{{49, 24}, {10, 25}}}, {30, [2]ECBlock{{24, 15}, {46, 16}}}}},
	38: {3362, []int{6, 32, 58, 84, 110, 136, 162}, [4]ECBlocks{{30, [2]ECBlock{{4, 122}, {18, 123}}}, {28, [2]ECBlock{{13, 46}, {32, 47}}}, {30, [2]ECBlock{{48, 24}, {14, 25}}}, {30, [2]ECBlock{{42, 15}, {32, 16}}}}},
	39: {3532, []int{6, 26, 54, 82, 110, 138, 166}, [4]ECBlocks{{30, [2]ECBlock{{20, 117}, {4, 118}}}, {28, [2]ECBlock{{40, 47}, {7, 48}}}, {30, [2]ECBlock{{43, 24}, {22, 25}}}, {30, [2]ECBlock{{10, 15}, {67, 16}}}}},
	40: {3706, []int{6, 30, 58, 86, 114, 142, 170}, [4]ECBlocks{{30, [2]ECBlock{{19, 118}, {6, 119}}}, {28, [2]ECBlock{{18, 47}, {31, 48}}}, {30, [2]ECBlock{{34, 24}, {34, 25}}}, {30, [2]ECBlock{{20, 15}, {61, 16}}}}},
}
