// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charset maps character set names to text encodings and to
// the Extended Channel Interpretation values announcing them in a QR
// code.
//
// Names are resolved through the IANA registry, so any registered
// alias of a character set is accepted.  A few names common in other
// ecosystems ("UnicodeBig", "EUC_KR", "Cp1252" and the like) are
// accepted as well.
package charset // import "github.com/vanstone/qr/charset"

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Default is the character set of byte mode segments without an ECI
// header.
const Default = "ISO-8859-1"

// ShiftJIS is the character set of kanji mode segments.
const ShiftJIS = "Shift_JIS"

var ErrUnknown = errors.New("unknown character set")

// Names not in the IANA registry, mapped to registered ones.
var aliases = map[string]string{
	"ascii":              "US-ASCII",
	"cp1250":             "windows-1250",
	"cp1251":             "windows-1251",
	"cp1252":             "windows-1252",
	"cp1256":             "windows-1256",
	"euc_cn":             "GB2312",
	"euc_kr":             "EUC-KR",
	"iso8859_1":          "ISO-8859-1",
	"sjis":               "Shift_JIS",
	"unicodebig":         "UTF-16BE",
	"unicodebigunmarked": "UTF-16BE",
	"utf8":               "UTF-8",
}

// Encodings used by the encoder itself, resolved without the index.
var builtin = map[string]encoding.Encoding{
	"iso-8859-1": charmap.ISO8859_1,
	"shift_jis":  japanese.ShiftJIS,
	"utf-8":      unicode.UTF8,
	"utf-16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// An eci lists the names of a character set, the first of which is
// the one used in this package, and its ECI values, the first of
// which is written to the code.
type eci struct {
	values []int
	names  []string
}

var ecis = []eci{
	{[]int{0, 2}, []string{"Cp437", "IBM437"}},
	{[]int{1, 3}, []string{"ISO-8859-1"}},
	{[]int{4}, []string{"ISO-8859-2"}},
	{[]int{5}, []string{"ISO-8859-3"}},
	{[]int{6}, []string{"ISO-8859-4"}},
	{[]int{7}, []string{"ISO-8859-5"}},
	{[]int{8}, []string{"ISO-8859-6"}},
	{[]int{9}, []string{"ISO-8859-7"}},
	{[]int{10}, []string{"ISO-8859-8"}},
	{[]int{11}, []string{"ISO-8859-9"}},
	{[]int{12}, []string{"ISO-8859-10"}},
	{[]int{13}, []string{"ISO-8859-11"}},
	{[]int{15}, []string{"ISO-8859-13"}},
	{[]int{16}, []string{"ISO-8859-14"}},
	{[]int{17}, []string{"ISO-8859-15"}},
	{[]int{18}, []string{"ISO-8859-16"}},
	{[]int{20}, []string{"Shift_JIS", "SJIS"}},
	{[]int{21}, []string{"windows-1250", "Cp1250"}},
	{[]int{22}, []string{"windows-1251", "Cp1251"}},
	{[]int{23}, []string{"windows-1252", "Cp1252"}},
	{[]int{24}, []string{"windows-1256", "Cp1256"}},
	{[]int{25}, []string{"UTF-16BE", "UnicodeBig", "UnicodeBigUnmarked"}},
	{[]int{26}, []string{"UTF-8", "UTF8"}},
	{[]int{27, 170}, []string{"US-ASCII", "ASCII"}},
	{[]int{28}, []string{"Big5"}},
	{[]int{29}, []string{"GB18030", "GB2312", "EUC_CN", "GBK"}},
	{[]int{30}, []string{"EUC-KR", "EUC_KR"}},
}

var (
	byName      = make(map[string]*eci) // lower case names
	byCanonical = make(map[string]*eci) // canonical IANA names
	byValue     = make(map[int]*eci)
)

func init() {
	for i := range ecis {
		e := &ecis[i]
		for _, v := range e.values {
			byValue[v] = e
		}
		for _, name := range e.names {
			byName[strings.ToLower(name)] = e
			if cn, err := CanonicalName(name); err == nil {
				if _, dup := byCanonical[cn]; !dup {
					byCanonical[cn] = e
				}
			}
		}
	}
}

func resolve(name string) string {
	if a, ok := aliases[strings.ToLower(name)]; ok {
		return a
	}
	return name
}

// Lookup returns the encoding for the named character set.
func Lookup(name string) (encoding.Encoding, error) {
	name = resolve(name)
	if e, ok := builtin[strings.ToLower(name)]; ok {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil || e == nil {
		// known to the registry but not implemented gives a nil e
		return nil, errors.Wrapf(ErrUnknown, "qr: charset %q", name)
	}
	return e, nil
}

// CanonicalName returns the IANA name of the named character set.
func CanonicalName(name string) (string, error) {
	e, err := Lookup(name)
	if err != nil {
		return "", err
	}
	cn, err := ianaindex.IANA.Name(e)
	if err != nil {
		return "", errors.Wrapf(ErrUnknown, "qr: charset %q", name)
	}
	return cn, nil
}

// Same reports whether a and b name the same character set.
func Same(a, b string) bool {
	if strings.EqualFold(resolve(a), resolve(b)) {
		return true
	}
	ca, err := CanonicalName(a)
	if err != nil {
		return false
	}
	cb, err := CanonicalName(b)
	return err == nil && ca == cb
}

// IsShiftJIS reports whether name is an alias of Shift_JIS.
func IsShiftJIS(name string) bool { return Same(name, ShiftJIS) }

func find(name string) *eci {
	if e, ok := byName[strings.ToLower(name)]; ok {
		return e
	}
	if cn, err := CanonicalName(name); err == nil {
		return byCanonical[cn]
	}
	return nil
}

// ECIByName returns the ECI value of the named character set.
// The second result is false if the character set has no ECI value.
func ECIByName(name string) (int, bool) {
	if e := find(name); e != nil {
		return e.values[0], true
	}
	return 0, false
}

// NameByECI returns the name of the character set with ECI value v.
// The second result is false if v is not assigned.
func NameByECI(v int) (string, bool) {
	if e, ok := byValue[v]; ok {
		return e.names[0], true
	}
	return "", false
}
