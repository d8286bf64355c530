// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strings"

// Bits is an append-only sequence of bits, most significant bit of
// each byte first.  The zero value is an empty sequence.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with capacity for n bytes.
func NewBits(n int) *Bits {
	return &Bits{b: make([]byte, 0, n)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Size returns the number of bits in b.
func (b *Bits) Size() int { return b.nbit }

// SizeInBytes returns the number of bytes needed to hold b.
func (b *Bits) SizeInBytes() int { return (b.nbit + 7) >> 3 }

// Bytes returns the underlying bytes of b, which must hold a whole
// number of bytes.
func (b *Bits) Bytes() []byte {
	if b.nbit&7 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Get returns bit i.
func (b *Bits) Get(i int) bool {
	if i < 0 || i >= b.nbit {
		panic("qr: bit index out of range")
	}
	return b.b[i>>3]>>(7&^i)&1 != 0
}

// AppendBit appends a single bit.
func (b *Bits) AppendBit(bit bool) {
	var v uint32
	if bit {
		v = 1
	}
	b.AppendBits(v, 1)
}

// AppendBits appends the nbit low bits of v, most significant first.
// nbit must be between 0 and 32.
func (b *Bits) AppendBits(v uint32, nbit int) {
	if nbit < 0 || nbit > 32 {
		panic("qr: cannot append more than 32 bits")
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// Append appends the bits of o.
func (b *Bits) Append(o *Bits) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, o.b...)
		b.nbit += o.nbit
		return
	}
	n := o.nbit
	for _, v := range o.b {
		b.AppendBits(uint32(v)>>(8-min(n, 8)), min(n, 8))
		n -= 8
	}
}

// ToBytes copies numBytes bytes, starting at bit bitOffset, to
// out[outOffset:].
func (b *Bits) ToBytes(bitOffset int, out []byte, outOffset, numBytes int) {
	if bitOffset < 0 || bitOffset+numBytes*8 > b.nbit {
		panic("qr: read past end of bits")
	}
	if bitOffset&7 == 0 {
		copy(out[outOffset:outOffset+numBytes], b.b[bitOffset>>3:])
		return
	}
	for i := 0; i < numBytes; i++ {
		var v byte
		for j := 0; j < 8; j++ {
			v <<= 1
			if b.Get(bitOffset) {
				v |= 1
			}
			bitOffset++
		}
		out[outOffset+i] = v
	}
}

// String returns b as a string of 'X' for 1 and '.' for 0 bits, with
// a space after every byte.
func (b *Bits) String() string {
	var s strings.Builder
	for i := 0; i < b.nbit; i++ {
		if i&7 == 0 && i != 0 {
			s.WriteByte(' ')
		}
		if b.Get(i) {
			s.WriteByte('X')
		} else {
			s.WriteByte('.')
		}
	}
	return s.String()
}
