package coding

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanstone/qr/charset"
	"github.com/vanstone/qr/gf256"
)

func TestChooseMode(t *testing.T) {
	for _, tt := range []struct {
		content, enc string
		want         Mode
	}{
		{"", "", Byte},
		{"0123456789", "", Numeric},
		{"ABC 123 $%*+-./:", "", Alphanumeric},
		{"A", "", Alphanumeric},
		{"abc", "", Byte},
		{"AB1a", "", Byte},
		{"\x01", "", Byte},
		{"été", "", Byte},
		{"12345", "UTF-8", Numeric},
		{"点茗", "Shift_JIS", Kanji},
		{"点茗", "MS_Kanji", Kanji},
		{"", "Shift_JIS", Kanji},
		{"12", "Shift_JIS", Byte},
		{"点a", "Shift_JIS", Byte},
		{"ｱｲ", "Shift_JIS", Byte},  // single byte katakana
		{"é", "Shift_JIS", Byte},   // not encodable
		{"点茗", "UTF-8", Byte},
	} {
		assert.Equal(t, tt.want, ChooseMode(tt.content, tt.enc),
			"%q in %q", tt.content, tt.enc)
	}
}

func TestAppendNumeric(t *testing.T) {
	var b Bits
	appendNumeric("12345", &b)
	require.Equal(t, 17, b.Size())
	assert.Equal(t, uint32(123), readBits(&b, 0, 10))
	assert.Equal(t, uint32(45), readBits(&b, 10, 7))

	b.Reset()
	appendNumeric("0019", &b)
	require.Equal(t, 14, b.Size())
	assert.Equal(t, uint32(1), readBits(&b, 0, 10))
	assert.Equal(t, uint32(9), readBits(&b, 10, 4))
}

func TestAppendAlphanumeric(t *testing.T) {
	var b Bits
	require.NoError(t, appendAlphanumeric("ABCDE", &b))
	require.Equal(t, 28, b.Size())
	assert.Equal(t, uint32(461), readBits(&b, 0, 11))
	assert.Equal(t, uint32(553), readBits(&b, 11, 11))
	assert.Equal(t, uint32(14), readBits(&b, 22, 6))

	assert.ErrorIs(t, appendAlphanumeric("ABc", &b), ErrEncoding)
	assert.Equal(t, -1, AlphanumericCode('a'))
	assert.Equal(t, -1, AlphanumericCode(0x1f))
	assert.Equal(t, -1, AlphanumericCode('é'))
	assert.Equal(t, 44, AlphanumericCode(':'))
	assert.Equal(t, 36, AlphanumericCode(' '))
}

func TestAppendKanji(t *testing.T) {
	var b Bits
	require.NoError(t, appendKanji("点茗", &b))
	require.Equal(t, 26, b.Size())
	assert.Equal(t, uint32(0x0d9f), readBits(&b, 0, 13))
	assert.Equal(t, uint32(0x1aaa), readBits(&b, 13, 13))

	assert.ErrorIs(t, appendKanji("a", &b), ErrEncoding)
	assert.ErrorIs(t, appendKanji("é", &b), ErrEncoding)
}

func TestAppendBytes(t *testing.T) {
	var b Bits
	require.NoError(t, appendBytes("é!", "ISO-8859-1", &b))
	assert.Equal(t, []byte{0xe9, '!'}, b.Bytes())
	b.Reset()
	require.NoError(t, appendBytes("é", "UTF-8", &b))
	assert.Equal(t, []byte{0xc3, 0xa9}, b.Bytes())

	err := appendBytes("点", "ISO-8859-1", &b)
	assert.ErrorIs(t, err, ErrEncoding)
	err = appendBytes("x", "no-such-charset", &b)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.ErrorIs(t, err, charset.ErrUnknown)
}

func TestEncodeBitsHeader(t *testing.T) {
	// "12345", version 1-L: mode, count, data, terminator.
	b, v, mode, err := encodeBits("12345", L, "")
	require.NoError(t, err)
	assert.Equal(t, Version(1), v)
	assert.Equal(t, Numeric, mode)
	assert.Equal(t, uint32(0b0001), readBits(b, 0, 4))
	assert.Equal(t, uint32(5), readBits(b, 4, 10))
	assert.Equal(t, uint32(0b0001111011), readBits(b, 14, 10))
	assert.Equal(t, uint32(0b0101101), readBits(b, 24, 7))
	assert.Equal(t, uint32(0), readBits(b, 31, 4))
	assert.Equal(t, 26*8, b.Size())

	// "ABCDE"
	b, _, mode, err = encodeBits("ABCDE", L, "")
	require.NoError(t, err)
	assert.Equal(t, Alphanumeric, mode)
	assert.Equal(t, uint32(0b0010), readBits(b, 0, 4))
	assert.Equal(t, uint32(5), readBits(b, 4, 9))
	assert.Equal(t, uint32(461), readBits(b, 13, 11))
	assert.Equal(t, uint32(553), readBits(b, 24, 11))
	assert.Equal(t, uint32(14), readBits(b, 35, 6))

	// Byte mode in the default character set has no ECI header.
	b, _, mode, err = encodeBits("é", L, "")
	require.NoError(t, err)
	assert.Equal(t, Byte, mode)
	assert.Equal(t, uint32(0b0100), readBits(b, 0, 4))
	assert.Equal(t, uint32(1), readBits(b, 4, 8))
	assert.Equal(t, uint32(0xe9), readBits(b, 12, 8))
	b, _, _, err = encodeBits("é", L, "latin1")
	require.NoError(t, err)
	assert.Equal(t, uint32(0b0100), readBits(b, 0, 4))

	// Other character sets get one.
	b, _, _, err = encodeBits("é", L, "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, uint32(0b0111), readBits(b, 0, 4))
	assert.Equal(t, uint32(26), readBits(b, 4, 8))
	assert.Equal(t, uint32(0b0100), readBits(b, 12, 4))
	assert.Equal(t, uint32(2), readBits(b, 16, 8))
	assert.Equal(t, uint32(0xc3a9), readBits(b, 24, 16))

	// Kanji mode counts characters.
	b, _, mode, err = encodeBits("点茗", L, "Shift_JIS")
	require.NoError(t, err)
	assert.Equal(t, Kanji, mode)
	assert.Equal(t, uint32(0b1000), readBits(b, 0, 4))
	assert.Equal(t, uint32(2), readBits(b, 4, 8))
	assert.Equal(t, uint32(0x0d9f), readBits(b, 12, 13))
}

func TestEncodeBitsHelloWorld(t *testing.T) {
	b, v, _, err := encodeBits("HELLO WORLD", M, "")
	require.NoError(t, err)
	assert.Equal(t, Version(1), v)
	assert.Equal(t, []byte{
		32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17,
		196, 35, 39, 119, 235, 215, 231, 226, 93, 23,
	}, b.Bytes())
}

func TestTerminate(t *testing.T) {
	for _, tt := range []struct {
		nbit int
		want []byte
	}{
		{152, nil},
		{150, nil},
		{148, nil},
		{147, nil},
		{144, []byte{0}},
		{10, []byte{0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
			0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec}},
	} {
		b := NewBits(19)
		for i := 0; i < tt.nbit; i++ {
			b.AppendBit(true)
		}
		terminate(19, b)
		require.Equal(t, 152, b.Size())
		got := b.Bytes()[(tt.nbit+7)/8:]
		if len(tt.want) == 0 {
			assert.Empty(t, got, "%d bits", tt.nbit)
		} else {
			assert.Equal(t, tt.want, got, "%d bits", tt.nbit)
		}
		for i := tt.nbit; i < min(tt.nbit+4, 152); i++ {
			assert.False(t, b.Get(i), "%d bits: terminator bit %d", tt.nbit, i)
		}
	}

	b := NewBits(19)
	b.AppendBits(0, 153-128)
	b.AppendBits(0, 32)
	b.AppendBits(0, 32)
	b.AppendBits(0, 32)
	b.AppendBits(0, 32)
	assert.Panics(t, func() { terminate(19, b) })
}

func TestBlockSizes(t *testing.T) {
	// version 5-Q: 2 blocks of 15 and 2 blocks of 16 data bytes
	var got [][2]int
	for i := 0; i < 4; i++ {
		d, c := blockSizes(134, 62, 4, i)
		got = append(got, [2]int{d, c})
	}
	assert.Equal(t, [][2]int{{15, 18}, {15, 18}, {16, 18}, {16, 18}}, got)
	assert.Panics(t, func() { blockSizes(134, 61, 4, 0) })
}

func TestInterleave(t *testing.T) {
	b := NewBits(134)
	data := make([]byte, 62)
	for i := range data {
		data[i] = byte(i)
		b.AppendBits(uint32(i), 8)
	}
	out := interleave(b, 134, 62, 4).Bytes()
	require.Len(t, out, 134)

	blocks := [][]byte{data[:15], data[15:30], data[30:46], data[46:]}
	checks := make([][]byte, 4)
	rs := gf256.NewRSEncoder(Field, 18)
	for i, bl := range blocks {
		checks[i] = make([]byte, 18)
		rs.ECC(bl, checks[i])
	}
	var want []byte
	for i := 0; i < 16; i++ {
		for _, bl := range blocks {
			if i < len(bl) {
				want = append(want, bl[i])
			}
		}
	}
	assert.Equal(t, []byte{0, 15, 30, 46, 1, 16, 31, 47}, want[:8])
	assert.Equal(t, []byte{45, 61}, want[60:62])
	for i := 0; i < 18; i++ {
		for _, c := range checks {
			want = append(want, c[i])
		}
	}
	assert.Equal(t, want, out)
}

func TestCapacity(t *testing.T) {
	for _, tt := range []struct {
		content string
		l       Level
		ok      bool
	}{
		{strings.Repeat("1", 7089), L, true},
		{strings.Repeat("1", 7090), L, false},
		{strings.Repeat("A", 4296), L, true},
		{strings.Repeat("A", 4297), L, false},
		{strings.Repeat("a", 2953), L, true},
		{strings.Repeat("a", 2954), L, false},
		{strings.Repeat("1", 3057), H, true},
		{strings.Repeat("1", 3058), H, false},
	} {
		s, err := Encode(tt.content, tt.l, "")
		if tt.ok {
			require.NoError(t, err, "%d characters", len(tt.content))
			assert.Equal(t, MaxVersion, s.Version)
		} else {
			assert.ErrorIs(t, err, ErrCapacity, "%d characters", len(tt.content))
		}
	}

	// one digit over version 1 capacity moves to version 2
	s, err := Encode(strings.Repeat("1", 41), L, "")
	require.NoError(t, err)
	assert.Equal(t, Version(1), s.Version)
	s, err = Encode(strings.Repeat("1", 42), L, "")
	require.NoError(t, err)
	assert.Equal(t, Version(2), s.Version)
}

// encodedLength returns the length in bits of content at version v.
func encodedLength(content string, mode Mode, enc string, v Version) int {
	if enc == "" {
		enc = charset.Default
	}
	var data Bits
	if err := appendData(content, mode, enc, &data); err != nil {
		panic(err)
	}
	n := 4 + CharCountBits(mode, v) + data.Size()
	if mode == Byte && !charset.Same(enc, charset.Default) {
		if _, ok := charset.ECIByName(enc); ok {
			n += 12
		}
	}
	return n
}

func TestVersionFixedPoint(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const digits = "0123456789"
	const alnum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
	for i := 0; i < 300; i++ {
		var set string
		switch i % 3 {
		case 0:
			set = digits
		case 1:
			set = alnum
		default:
			set = alnum + "abcdefgh"
		}
		// lengths around the size class boundaries are the most
		// interesting, so favour long content
		b := make([]byte, 1+r.Intn(2500))
		for j := range b {
			b[j] = set[r.Intn(len(set))]
		}
		content := string(b)
		l := Level(r.Intn(4))
		s, err := Encode(content, l, "")
		if err != nil {
			assert.ErrorIs(t, err, ErrCapacity)
			n := encodedLength(content, ChooseMode(content, ""), "", MaxVersion)
			assert.Greater(t, n, MaxVersion.DataBytes(l)*8)
			continue
		}
		n := encodedLength(content, s.Mode, "", s.Version)
		assert.LessOrEqual(t, n, s.Version.DataBytes(l)*8)
		for v := MinVersion; v < s.Version; v++ {
			n := encodedLength(content, s.Mode, "", v)
			assert.Greater(t, (n+7)/8, v.DataBytes(l),
				"%d characters fit in %v-%v", len(content), v, l)
		}
	}
}

func TestMaskChoice(t *testing.T) {
	for _, tt := range []struct {
		content string
		l       Level
	}{
		{"HELLO WORLD", M},
		{"01234567", H},
		{"https://example.com/?q=qr", Q},
		{strings.Repeat("mask ", 40), L},
		{strings.Repeat("9", 300), M},
	} {
		s, err := Encode(tt.content, tt.l, "")
		require.NoError(t, err)
		data, v, _, err := encodeBits(tt.content, tt.l, "")
		require.NoError(t, err)
		g := NewModuleGrid(v.Dimension())
		var pen [8]int
		for m := range pen {
			buildMatrix(data, tt.l, v, m, g)
			pen[m] = Penalty(g)
			if m == s.Mask {
				assert.Equal(t, g.cells, s.Matrix.cells, "%q", tt.content)
			}
		}
		for m, p := range pen {
			if m < s.Mask {
				assert.Greater(t, p, pen[s.Mask], "%q mask %d", tt.content, m)
			} else {
				assert.GreaterOrEqual(t, p, pen[s.Mask], "%q mask %d", tt.content, m)
			}
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("点", L, "")
	assert.ErrorIs(t, err, ErrEncoding)
	_, err = Encode("x", L, "no-such-charset")
	assert.ErrorIs(t, err, ErrEncoding)
	_, err = Encode("x", H+1, "")
	assert.ErrorIs(t, err, ErrLevel)
}

func TestEncodeConcurrent(t *testing.T) {
	want, err := Encode("concurrent encoding", Q, "UTF-8")
	require.NoError(t, err)
	var wg sync.WaitGroup
	res := make([]*Symbol, 8)
	for i := range res {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res[i], _ = Encode("concurrent encoding", Q, "UTF-8")
		}(i)
	}
	wg.Wait()
	for _, s := range res {
		require.NotNil(t, s)
		assert.Equal(t, want.Matrix.cells, s.Matrix.cells)
	}
}

func TestSymbolString(t *testing.T) {
	s, err := Encode("1", L, "")
	require.NoError(t, err)
	str := s.String()
	assert.True(t, strings.HasPrefix(str, "<<\n mode: numeric\n level: L\n version: 1\n"))
	assert.True(t, strings.HasSuffix(str, ">>\n"))
	assert.Equal(t, 21+7, strings.Count(str, "\n"))
}

func TestModuleGridBitMatrix(t *testing.T) {
	s, err := Encode("BITMATRIX", Q, "")
	require.NoError(t, err)
	m := s.Matrix.BitMatrix()
	siz := s.Matrix.Size()
	require.Equal(t, siz, m.Width())
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			require.Equal(t, s.Matrix.Black(x, y), m.Get(x, y))
		}
	}
}
