// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Encode chooses the encoding mode, version and mask pattern for the
content and renders the symbol, with a quiet zone, into a bit matrix
of at least the requested size.  Set bits are black modules.

	m, err := qr.Encode("HELLO WORLD", qr.FormatQRCode, 200, 200,
		&qr.Hints{ErrorCorrection: coding.M})

The bit matrix may be displayed with Image or written with EncodePBM.
Lower level details are implemented in package coding.
*/
package qr // import "github.com/vanstone/qr"

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/vanstone/qr/bitmatrix"
	"github.com/vanstone/qr/coding"
)

// ErrArgument is returned for invalid arguments to Encode and Render.
var ErrArgument = errors.New("qr: invalid argument")

// DefaultMargin is the quiet zone width in modules when none is given.
const DefaultMargin = 4

// A Format is a barcode format.  Only FormatQRCode is encoded by this
// package.
type Format int

const (
	FormatAztec Format = iota
	FormatCodabar
	FormatCode39
	FormatCode93
	FormatCode128
	FormatDataMatrix
	FormatEAN8
	FormatEAN13
	FormatITF
	FormatMaxiCode
	FormatPDF417
	FormatQRCode
	FormatUPCA
	FormatUPCE
)

var formatNames = [...]string{
	FormatAztec:      "AZTEC",
	FormatCodabar:    "CODABAR",
	FormatCode39:     "CODE_39",
	FormatCode93:     "CODE_93",
	FormatCode128:    "CODE_128",
	FormatDataMatrix: "DATA_MATRIX",
	FormatEAN8:       "EAN_8",
	FormatEAN13:      "EAN_13",
	FormatITF:        "ITF",
	FormatMaxiCode:   "MAXICODE",
	FormatPDF417:     "PDF_417",
	FormatQRCode:     "QR_CODE",
	FormatUPCA:       "UPC_A",
	FormatUPCE:       "UPC_E",
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Hints control encoding.  A nil *Hints or zero fields select the
// defaults.
type Hints struct {
	// ErrorCorrection is the error correction level, L by default.
	ErrorCorrection coding.Level

	// CharacterSet is the character set of byte mode data.  The
	// default is ISO-8859-1.  Other character sets with an assigned
	// ECI value are announced in the symbol.  Shift_JIS enables
	// kanji mode.
	CharacterSet string

	// Margin is the quiet zone width in modules, DefaultMargin if nil.
	Margin *int
}

func (h *Hints) level() coding.Level {
	if h == nil {
		return coding.L
	}
	return h.ErrorCorrection
}

func (h *Hints) charset() string {
	if h == nil {
		return ""
	}
	return h.CharacterSet
}

func (h *Hints) margin() int {
	if h == nil || h.Margin == nil {
		return DefaultMargin
	}
	return *h.Margin
}

// Encode encodes content as a QR code and renders it into a bit
// matrix of at least width×height.  The symbol is scaled by the
// largest integer factor fitting the matrix with the quiet zone and
// centred.
func Encode(content string, format Format, width, height int, hints *Hints) (*bitmatrix.BitMatrix, error) {
	switch {
	case format != FormatQRCode:
		return nil, errors.Wrapf(ErrArgument,
			"can only encode %v, but got %v", FormatQRCode, format)
	case width < 0 || height < 0:
		return nil, errors.Wrapf(ErrArgument,
			"requested dimensions are too small: %dx%d", width, height)
	case hints.margin() < 0:
		return nil, errors.Wrapf(ErrArgument,
			"negative margin %d", hints.margin())
	}
	s, err := EncodeSymbol(content, hints)
	if err != nil {
		return nil, err
	}
	return Render(s, width, height, hints.margin())
}

// EncodeSymbol encodes content as a QR code without rendering it.
func EncodeSymbol(content string, hints *Hints) (*coding.Symbol, error) {
	if content == "" {
		return nil, errors.Wrap(ErrArgument, "empty content")
	}
	return coding.Encode(content, hints.level(), hints.charset())
}

// Render scales s into a bit matrix of at least width×height, with a
// quiet zone of margin modules on each side.
func Render(s *coding.Symbol, width, height, margin int) (*bitmatrix.BitMatrix, error) {
	if s == nil || s.Matrix == nil {
		panic("qr: internal error: symbol without matrix")
	}
	if width < 0 || height < 0 || margin < 0 {
		return nil, errors.Wrapf(ErrArgument,
			"size %dx%d, margin %d", width, height, margin)
	}
	g := s.Matrix
	siz := g.Size()
	qrSize := siz + margin*2
	outWidth := max(width, qrSize)
	outHeight := max(height, qrSize)

	multiple := min(outWidth/qrSize, outHeight/qrSize)
	if multiple < 1 {
		return nil, errors.Wrapf(ErrArgument,
			"cannot fit %d modules in %dx%d", qrSize, outWidth, outHeight)
	}
	left := (outWidth - siz*multiple) / 2
	top := (outHeight - siz*multiple) / 2

	m, err := bitmatrix.New(outWidth, outHeight)
	if err != nil {
		return nil, errors.Wrap(ErrArgument, err.Error())
	}
	for y, oy := 0, top; y < siz; y, oy = y+1, oy+multiple {
		for x, ox := 0, left; x < siz; x, ox = x+1, ox+multiple {
			if g.Black(x, y) {
				if err := m.SetRegion(ox, oy, multiple, multiple); err != nil {
					panic("qr: internal error: " + err.Error())
				}
			}
		}
	}
	return m, nil
}
