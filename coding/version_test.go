package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionTable(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		assert.Equal(t, 17+4*int(v), v.Dimension())
		for l := L; l <= H; l++ {
			ecb := v.ECBlocks(l)
			sum := 0
			for i, g := range ecb.Groups {
				sum += g.Count * (g.DataCodewords + ecb.ECCodewords)
				if i == 1 && g.Count != 0 {
					assert.Equal(t, ecb.Groups[0].DataCodewords+1,
						g.DataCodewords, "%v-%v", v, l)
				}
			}
			assert.Equal(t, v.TotalCodewords(), sum, "%v-%v", v, l)
			assert.Equal(t, v.DataBytes(l)+ecb.TotalECCodewords(),
				v.TotalCodewords(), "%v-%v", v, l)
			// group 2 has the remainder blocks
			assert.Equal(t, v.TotalCodewords()%ecb.NumBlocks(),
				ecb.Groups[1].Count, "%v-%v", v, l)
			if l > L {
				assert.Less(t, v.DataBytes(l), v.DataBytes(l-1))
			}
		}
		if v > MinVersion {
			assert.Greater(t, v.TotalCodewords(), (v - 1).TotalCodewords())
		}
		align := v.Alignment()
		if v == 1 {
			assert.Empty(t, align)
		} else {
			require.NotEmpty(t, align)
			assert.Equal(t, 6, align[0])
			assert.Equal(t, v.Dimension()-7, align[len(align)-1])
		}
	}
}

func TestVersionDataBytes(t *testing.T) {
	for _, tt := range []struct {
		v    Version
		l    Level
		want int
	}{
		{1, L, 19}, {1, M, 16}, {1, Q, 13}, {1, H, 9},
		{5, Q, 62}, {7, H, 66}, {10, M, 216},
		{40, L, 2956}, {40, H, 1276},
	} {
		assert.Equal(t, tt.want, tt.v.DataBytes(tt.l), "%v-%v", tt.v, tt.l)
	}
	assert.Equal(t, 3706, Version(40).TotalCodewords())
	assert.Equal(t, []int{6, 22, 38}, Version(7).Alignment())
	assert.Equal(t, []int{6, 30, 58, 86, 114, 142, 170}, Version(40).Alignment())
}

func TestVersionInvalid(t *testing.T) {
	assert.Panics(t, func() { Version(0).TotalCodewords() })
	assert.Panics(t, func() { Version(41).ECBlocks(L) })
	assert.Panics(t, func() { Version(1).ECBlocks(H + 1) })
	assert.False(t, Version(0).Valid())
	assert.True(t, Version(40).Valid())
}

func TestParse(t *testing.T) {
	for s, want := range map[string]Level{"l": L, "M": M, "q": Q, "H": H} {
		l, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, want, l)
	}
	_, err := ParseLevel("X")
	assert.ErrorIs(t, err, ErrLevel)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "LMQH", L.String()+M.String()+Q.String()+H.String())
	assert.Equal(t, "7", Level(7).String())
	assert.Equal(t, []uint32{1, 0, 3, 2},
		[]uint32{LevelBits(L), LevelBits(M), LevelBits(Q), LevelBits(H)})
	assert.Panics(t, func() { LevelBits(-1) })
}

func TestMode(t *testing.T) {
	seen := make(map[uint32]Mode)
	for _, tt := range []struct {
		m     Mode
		ind   uint32
		count [3]int
	}{
		{Terminator, 0x0, [3]int{0, 0, 0}},
		{Numeric, 0x1, [3]int{10, 12, 14}},
		{Alphanumeric, 0x2, [3]int{9, 11, 13}},
		{StructuredAppend, 0x3, [3]int{0, 0, 0}},
		{Byte, 0x4, [3]int{8, 16, 16}},
		{FNC1First, 0x5, [3]int{0, 0, 0}},
		{ECI, 0x7, [3]int{0, 0, 0}},
		{Kanji, 0x8, [3]int{8, 10, 12}},
		{FNC1Second, 0x9, [3]int{0, 0, 0}},
		{Hanzi, 0xd, [3]int{8, 10, 12}},
	} {
		assert.Equal(t, tt.ind, ModeIndicator(tt.m), "%v", tt.m)
		for i, v := range []Version{9, 26, 40} {
			assert.Equal(t, tt.count[i], CharCountBits(tt.m, v), "%v %v", tt.m, v)
		}
		assert.Equal(t, tt.count[0], CharCountBits(tt.m, 1), "%v", tt.m)
		assert.Equal(t, tt.count[1], CharCountBits(tt.m, 10), "%v", tt.m)
		assert.Equal(t, tt.count[2], CharCountBits(tt.m, 27), "%v", tt.m)
		m, dup := seen[tt.ind]
		assert.False(t, dup, "%v and %v share indicator %#x", m, tt.m, tt.ind)
		seen[tt.ind] = tt.m
	}
	assert.Len(t, seen, len(modes))
	assert.Equal(t, "kanji", Kanji.String())
	assert.Equal(t, "42", Mode(42).String())
	assert.Panics(t, func() { ModeIndicator(42) })
}
