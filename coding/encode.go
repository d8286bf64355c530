// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: data
// encoding, error correction, symbol layout and masking.
package coding // import "github.com/vanstone/qr/coding"

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/vanstone/qr/charset"
	"github.com/vanstone/qr/gf256"
)

var (
	ErrEncoding = errors.New("qr: cannot encode content")
	ErrCapacity = errors.New("qr: data too big")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// Reed-Solomon encoders by number of check bytes.
var encoders [31]sync.Pool

func getEncoder(n int) *gf256.RSEncoder {
	if rs, ok := encoders[n].Get().(*gf256.RSEncoder); ok {
		return rs
	}
	return gf256.NewRSEncoder(Field, n)
}

func putEncoder(rs *gf256.RSEncoder) { encoders[rs.Len()].Put(rs) }

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table, indexed by the low 6 bits of a
// character accepted by alphamask.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// AlphanumericCode returns the alphanumeric mode code of r, or -1 if
// r has none.
func AlphanumericCode(r rune) int {
	if alphamask>>(uint32(r)-' ')&1 == 0 {
		return -1
	}
	return int(alpha[r&0x3f])
}

// A Symbol is an encoded QR code.
type Symbol struct {
	Version Version
	Level   Level
	Mode    Mode
	Mask    int         // mask pattern, 0 to 7
	Matrix  *ModuleGrid // no Empty cells
}

func (s *Symbol) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<<\n mode: %v\n level: %v\n version: %v\n mask: %d\n",
		s.Mode, s.Level, s.Version, s.Mask)
	if s.Matrix != nil {
		b.WriteString(" matrix:\n")
		b.WriteString(s.Matrix.String())
	}
	b.WriteString(">>\n")
	return b.String()
}

// ChooseMode returns the mode content is encoded in.  Content in the
// Shift_JIS character set consisting only of double byte characters
// is encoded in kanji mode.  Otherwise the mode is the narrowest of
// numeric, alphanumeric and byte modes encoding all of content.
func ChooseMode(content, enc string) Mode {
	if charset.IsShiftJIS(enc) {
		if onlyDoubleByteKanji(content) {
			return Kanji
		}
		return Byte
	}
	numeric, alphanumeric := false, false
	for _, r := range content {
		if '0' <= r && r <= '9' {
			numeric = true
		} else if AlphanumericCode(r) >= 0 {
			alphanumeric = true
		} else {
			return Byte
		}
	}
	if alphanumeric {
		return Alphanumeric
	}
	if numeric {
		return Numeric
	}
	return Byte
}

// shiftJIS returns content encoded in Shift_JIS.
func shiftJIS(content string) (string, error) {
	e, err := charset.Lookup(charset.ShiftJIS)
	if err != nil {
		return "", err
	}
	return e.NewEncoder().String(content)
}

// onlyDoubleByteKanji reports whether content encoded in Shift_JIS
// consists only of double byte characters.  Content not encodable in
// Shift_JIS is not.
func onlyDoubleByteKanji(content string) bool {
	b, err := shiftJIS(content)
	if err != nil || len(b)&1 != 0 {
		return false
	}
	for i := 0; i < len(b); i += 2 {
		if c := b[i]; (c < 0x81 || c > 0x9f) && (c < 0xe0 || c > 0xeb) {
			return false
		}
	}
	return true
}

// Encode encodes content at level l.  Byte mode content is encoded in
// the character set enc, which defaults to ISO-8859-1; other
// character sets are announced with an ECI header where one is
// assigned.
func Encode(content string, l Level, enc string) (*Symbol, error) {
	bits, v, mode, err := encodeBits(content, l, enc)
	if err != nil {
		return nil, err
	}

	// Apply masks to construct the actual codes.
	// Choose the code with the smallest penalty.
	siz := v.Dimension()
	g, best := NewModuleGrid(siz), NewModuleGrid(siz)
	mask, pen := -1, math.MaxInt
	for m := 0; m < 8; m++ {
		buildMatrix(bits, l, v, m, g)
		if p := Penalty(g); p < pen {
			best, g = g, best
			mask, pen = m, p
		}
	}
	return &Symbol{
		Version: v,
		Level:   l,
		Mode:    mode,
		Mask:    mask,
		Matrix:  best,
	}, nil
}

// encodeBits returns content encoded, padded and interleaved with
// error correction bytes, and the version and mode chosen.
func encodeBits(content string, l Level, enc string) (*Bits, Version, Mode, error) {
	if l < L || l > H {
		return nil, 0, 0, errors.Wrapf(ErrLevel, "%d", int(l))
	}
	if enc == "" {
		enc = charset.Default
	}
	mode := ChooseMode(content, enc)

	var header Bits
	if mode == Byte && !charset.Same(enc, charset.Default) {
		if eci, ok := charset.ECIByName(enc); ok {
			header.AppendBits(ModeIndicator(ECI), 4)
			header.AppendBits(uint32(eci), 8)
		}
	}
	header.AppendBits(ModeIndicator(mode), 4)

	var data Bits
	if err := appendData(content, mode, enc, &data); err != nil {
		return nil, 0, 0, err
	}

	// The length of the character count field depends on the
	// version and vice versa.  Estimate with version 1, then
	// settle with the field length of the estimate.
	v, err := chooseVersion(header.Size()+CharCountBits(mode, 1)+
		data.Size(), l)
	if err != nil {
		return nil, 0, 0, err
	}
	if v, err = chooseVersion(header.Size()+CharCountBits(mode, v)+
		data.Size(), l); err != nil {
		return nil, 0, 0, err
	}

	bits := NewBits(v.TotalCodewords())
	bits.Append(&header)
	n := len(content)
	switch mode {
	case Byte:
		n = data.SizeInBytes()
	case Kanji:
		n = utf8.RuneCountInString(content)
	}
	if err := appendLength(n, v, mode, bits); err != nil {
		return nil, 0, 0, err
	}
	bits.Append(&data)

	ecb := v.ECBlocks(l)
	nd := v.TotalCodewords() - ecb.TotalECCodewords()
	terminate(nd, bits)
	return interleave(bits, v.TotalCodewords(), nd, ecb.NumBlocks()),
		v, mode, nil
}

// chooseVersion returns the lowest version holding nbit bits at
// level l.
func chooseVersion(nbit int, l Level) (Version, error) {
	for v := MinVersion; v <= MaxVersion; v++ {
		if v.DataBytes(l) >= (nbit+7)>>3 {
			return v, nil
		}
	}
	return 0, errors.Wrapf(ErrCapacity, "%d bits at level %v", nbit, l)
}

func appendLength(n int, v Version, mode Mode, b *Bits) error {
	nbit := CharCountBits(mode, v)
	if n >= 1<<nbit {
		return errors.Wrapf(ErrCapacity, "%d %s characters in version %v",
			n, mode, v)
	}
	b.AppendBits(uint32(n), nbit)
	return nil
}

func appendData(content string, mode Mode, enc string, b *Bits) error {
	switch mode {
	case Numeric:
		appendNumeric(content, b)
		return nil
	case Alphanumeric:
		return appendAlphanumeric(content, b)
	case Byte:
		return appendBytes(content, enc, b)
	case Kanji:
		return appendKanji(content, b)
	}
	return errors.Wrapf(ErrMode, "%v", mode)
}

// appendNumeric encodes groups of 3 digits in 10 bits, and the last 2
// digits in 7 or 1 digit in 4 bits.
func appendNumeric(s string, b *Bits) {
	for ; len(s) >= 3; s = s[3:] {
		b.AppendBits(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
			uint32(s[2]-'0'), 10)
	}
	switch len(s) {
	case 2:
		b.AppendBits(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
	case 1:
		b.AppendBits(uint32(s[0]-'0'), 4)
	}
}

// appendAlphanumeric encodes pairs of characters in 11 bits and the
// last character in 6 bits.
func appendAlphanumeric(s string, b *Bits) error {
	codes := make([]uint32, 0, len(s))
	for _, r := range s {
		c := AlphanumericCode(r)
		if c < 0 {
			return errors.Wrapf(ErrEncoding, "%q is not alphanumeric", r)
		}
		codes = append(codes, uint32(c))
	}
	for ; len(codes) >= 2; codes = codes[2:] {
		b.AppendBits(codes[0]*45+codes[1], 11)
	}
	if len(codes) == 1 {
		b.AppendBits(codes[0], 6)
	}
	return nil
}

// appendBytes encodes s in the character set enc, 8 bits per byte.
func appendBytes(s, enc string, b *Bits) error {
	e, err := charset.Lookup(enc)
	if err != nil {
		// matches both ErrEncoding and charset.ErrUnknown
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	t, err := e.NewEncoder().String(s)
	if err != nil {
		return errors.Wrapf(ErrEncoding, "%s: %v", enc, err)
	}
	for i := 0; i < len(t); i++ {
		b.AppendBits(uint32(t[i]), 8)
	}
	return nil
}

// appendKanji encodes each Shift_JIS double byte character in 13 bits.
func appendKanji(s string, b *Bits) error {
	t, err := shiftJIS(s)
	if err != nil {
		return errors.Wrapf(ErrEncoding, "%s: %v", charset.ShiftJIS, err)
	}
	if len(t)&1 != 0 {
		return errors.Wrap(ErrEncoding, "odd Shift_JIS length")
	}
	for i := 0; i < len(t); i += 2 {
		c := uint32(t[i])<<8 | uint32(t[i+1])
		switch {
		case 0x8140 <= c && c <= 0x9ffc:
			c -= 0x8140
		case 0xe040 <= c && c <= 0xebbf:
			c -= 0xc140
		default:
			return errors.Wrapf(ErrEncoding, "invalid kanji %#x", c)
		}
		b.AppendBits(c>>8*0xc0+c&0xff, 13)
	}
	return nil
}

// terminate adds up to 4 terminator bits to b, pads it to a byte
// boundary and fills it to nd bytes with padding codewords.
func terminate(nd int, b *Bits) {
	capacity := nd * 8
	if b.Size() > capacity {
		panic("qr: internal error: " + strconv.Itoa(b.Size()) +
			" data bits exceed capacity " + strconv.Itoa(capacity))
	}
	b.AppendBits(0, min(4, capacity-b.Size()))
	b.AppendBits(0, -b.Size()&7)
	for pad := uint32(0xec); b.Size() < capacity; pad ^= 0xec ^ 0x11 {
		b.AppendBits(pad, 8)
	}
	if b.Size() != capacity {
		panic("qr: internal error: padding")
	}
}

// blockSizes returns the number of data and check bytes in block i.
// The last total%nblock blocks hold one more data byte than the rest.
func blockSizes(total, nd, nblock, i int) (data, check int) {
	n2 := total % nblock // blocks in group 2
	n1 := nblock - n2
	total1 := total / nblock
	data1 := nd / nblock
	check1 := total1 - data1
	check2 := total1 + 1 - (data1 + 1)
	if check1 != check2 {
		panic("qr: internal error: check bytes mismatch")
	}
	if data1*n1+(data1+1)*n2 != nd {
		panic("qr: internal error: data bytes mismatch")
	}
	if total != (data1+check1)*n1+(data1+1+check2)*n2 {
		panic("qr: internal error: total bytes mismatch")
	}
	if i < n1 {
		return data1, check1
	}
	return data1 + 1, check2
}

// interleave splits b into nblock blocks, computes their check bytes
// and returns the data bytes of all blocks interleaved followed by
// the check bytes interleaved.
func interleave(b *Bits, total, nd, nblock int) *Bits {
	if b.SizeInBytes() != nd {
		panic("qr: internal error: data bytes mismatch")
	}
	type block struct{ data, check []byte }
	blocks := make([]block, nblock)
	off, maxData, maxCheck := 0, 0, 0
	for i := range blocks {
		d, c := blockSizes(total, nd, nblock, i)
		data := make([]byte, d)
		b.ToBytes(off*8, data, 0, d)
		check := make([]byte, c)
		rs := getEncoder(c)
		rs.ECC(data, check)
		putEncoder(rs)
		blocks[i] = block{data, check}
		maxData, maxCheck = max(maxData, d), max(maxCheck, c)
		off += d
	}
	if off != nd {
		panic("qr: internal error: data bytes mismatch")
	}

	out := NewBits(total)
	for i := 0; i < maxData; i++ {
		for _, bl := range blocks {
			if i < len(bl.data) {
				out.AppendBits(uint32(bl.data[i]), 8)
			}
		}
	}
	for i := 0; i < maxCheck; i++ {
		for _, bl := range blocks {
			if i < len(bl.check) {
				out.AppendBits(uint32(bl.check[i]), 8)
			}
		}
	}
	if out.SizeInBytes() != total {
		panic("qr: internal error: interleaved " +
			strconv.Itoa(out.SizeInBytes()) + " of " +
			strconv.Itoa(total) + " bytes")
	}
	return out
}
