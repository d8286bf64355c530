// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"math/bits"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vanstone/qr/bitmatrix"
)

// EncodePBM writes a Portable Bit Map image displaying m to w, for use
// with netpbm.  Set bits are black.
func EncodePBM(w io.Writer, m *bitmatrix.BitMatrix) error {
	if w == nil || m == nil {
		return errors.Wrap(ErrArgument, "EncodePBM")
	}
	b := bufio.NewWriter(w)
	width, height := m.Width(), m.Height()
	if _, err := b.WriteString("P4\n" + strconv.Itoa(width) + " " +
		strconv.Itoa(height) + "\n"); err != nil {
		return err
	}
	var words []uint32
	row := make([]byte, (width+7)/8)
	for y := 0; y < height; y++ {
		words = m.Row(y, words)
		pbmRow(row, words, width)
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow packs the first width bits of words, least significant bit
// first, into row most significant bit first, 1 being black.
func pbmRow(row []byte, words []uint32, width int) {
	for i := range row {
		v := byte(words[i>>2] >> (i & 3 * 8))
		row[i] = bits.Reverse8(v)
	}
	// padding bits are zero
	if n := width & 7; n != 0 {
		row[len(row)-1] &= 0xff << (8 - n)
	}
}
