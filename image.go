// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image"
	"image/color"

	"github.com/vanstone/qr/bitmatrix"
)

// Image returns an Image displaying m, with set bits black and unset
// bits white.
func Image(m *bitmatrix.BitMatrix) image.Image {
	return &codeImage{m}
}

// codeImage implements image.Image
type codeImage struct {
	*bitmatrix.BitMatrix
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width(), c.Height())
}

func (c *codeImage) At(x, y int) color.Color {
	if 0 <= x && x < c.Width() && 0 <= y && y < c.Height() && c.Get(x, y) {
		return blackColor
	}
	return whiteColor
}

func (c *codeImage) ColorModel() color.Model {
	return color.GrayModel
}
