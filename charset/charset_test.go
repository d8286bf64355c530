package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		out  string
	}{
		{"ISO-8859-1", "été", "\xe9t\xe9"},
		{"latin1", "é", "\xe9"},
		{"UTF-8", "é", "\xc3\xa9"},
		{"UTF8", "é", "\xc3\xa9"},
		{"UnicodeBig", "Aé", "\x00A\x00\xe9"},
		{"Shift_JIS", "点", "\x93\x5f"},
		{"SJIS", "茗", "\xe4\xaa"},
	} {
		e, err := Lookup(tt.name)
		require.NoError(t, err, tt.name)
		out, err := e.NewEncoder().String(tt.in)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.out, out, tt.name)
	}

	_, err := Lookup("no-such-charset")
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "no-such-charset")
}

func TestSame(t *testing.T) {
	assert.True(t, Same("ISO-8859-1", "iso-8859-1"))
	assert.True(t, Same("ISO-8859-1", "latin1"))
	assert.True(t, Same("UTF-8", "utf8"))
	assert.False(t, Same("UTF-8", "ISO-8859-1"))
	assert.False(t, Same("bogus", "ISO-8859-1"))
	assert.True(t, IsShiftJIS("Shift_JIS"))
	assert.True(t, IsShiftJIS("SJIS"))
	assert.True(t, IsShiftJIS("MS_Kanji"))
	assert.False(t, IsShiftJIS("EUC-JP"))
}

func TestECIByName(t *testing.T) {
	for name, want := range map[string]int{
		"Cp437":        0,
		"ISO-8859-1":   1,
		"ISO-8859-2":   4,
		"ISO-8859-15":  17,
		"Shift_JIS":    20,
		"MS_Kanji":     20,
		"windows-1252": 23,
		"Cp1256":       24,
		"UnicodeBig":   25,
		"UTF-8":        26,
		"utf-8":        26,
		"US-ASCII":     27,
		"Big5":         28,
		"GBK":          29,
		"EUC_CN":       29,
		"EUC-KR":       30,
	} {
		v, ok := ECIByName(name)
		if assert.True(t, ok, name) {
			assert.Equal(t, want, v, name)
		}
	}
	_, ok := ECIByName("no-such-charset")
	assert.False(t, ok)
}

func TestNameByECI(t *testing.T) {
	for v, want := range map[int]string{
		0: "Cp437", 2: "Cp437", 3: "ISO-8859-1", 20: "Shift_JIS",
		26: "UTF-8", 170: "US-ASCII",
	} {
		name, ok := NameByECI(v)
		assert.True(t, ok, "%d", v)
		assert.Equal(t, want, name, "%d", v)
	}
	for _, v := range []int{14, 19, 31, -1} {
		_, ok := NameByECI(v)
		assert.False(t, ok, "%d", v)
	}
}
