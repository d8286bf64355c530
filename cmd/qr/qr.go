package main

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/vanstone/qr"
	"github.com/vanstone/qr/bitmatrix"
	"github.com/vanstone/qr/charset"
	"github.com/vanstone/qr/coding"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g = struct {
	fn      string       // filename
	cs      string       // character set
	lev     coding.Level // QR correction level
	margin  int          // quiet zone
	width   int          // minimum image width
	height  int          // minimum image height
	format  int          // output file format
	rotate  bool         // rotate 180°
	verbose bool         // report symbol parameters
}{}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: error correction level L, ISO-8859-1
byte mode, 4 module quiet zone, one pixel per module.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

var formats = []string{"png", "pbm", "utf8", "ascii"}

var encoders = [...]func(*bitmatrix.BitMatrix, io.Writer) error{
	func(m *bitmatrix.BitMatrix, w io.Writer) error {
		return png.Encode(w, qr.Image(m))
	},
	func(m *bitmatrix.BitMatrix, w io.Writer) error {
		return qr.EncodePBM(w, m)
	},
	utf8,
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.rotate, 'r', "rotate code 180°")
	getopt.Flag(&g.verbose, 'v', "report version, level, mode, "+
		"mask pattern and symbol position on standard error")
	getopt.Flag(&g.cs, 'c', `character set of byte mode data, `+
		`e.g. "UTF-8"; character sets other than ISO-8859-1 are `+
		`announced with an ECI segment; "Shift_JIS" enables `+
		`kanji mode`, "charset")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 16, Min: 0, Max: 999},
		"character set given by its ECI value; overrides -c", "eci")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	margin := getopt.Unsigned('m', qr.DefaultMargin,
		&getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 0, Max: 1 << 12},
		"quiet zone modules", "margin")
	width := getopt.Unsigned('W', 0,
		&getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 0, Max: 1 << 16},
		`minimum image width in pixels; modules are scaled `+
			`by the largest integer fitting the image`, "width")
	height := getopt.Unsigned('H', 0,
		&getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 0, Max: 1 << 16},
		"minimum image height in pixels", "height")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+`; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	var err error
	if g.lev, err = coding.ParseLevel(*lev); err != nil {
		log.Fatalln(err)
	}
	if *eci >= 0 {
		var ok bool
		if g.cs, ok = charset.NameByECI(int(*eci)); !ok {
			fmt.Fprintf(os.Stderr, "-E %d: unassigned ECI value\n", *eci)
			usage()
		}
	}
	g.margin = int(*margin)
	g.width, g.height = int(*width), int(*height)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func main() {
	log.SetFlags(0)
	parseFlags()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}

	hints := &qr.Hints{
		ErrorCorrection: g.lev,
		CharacterSet:    g.cs,
	}
	sym, err := qr.EncodeSymbol(s, hints)
	if err != nil {
		log.Fatalln(err)
	}
	m, err := qr.Render(sym, g.width, g.height, g.margin)
	if err != nil {
		log.Fatalln(err)
	}
	if g.rotate {
		m.Rotate180()
	}
	if g.verbose {
		report(sym, m)
	}
	write(m)
}

// report logs the parameters of sym and its placement in m.
func report(sym *coding.Symbol, m *bitmatrix.BitMatrix) {
	log.Printf("version %v-%v, %v mode, mask %d, %d modules",
		sym.Version, sym.Level, sym.Mode, sym.Mask, sym.Matrix.Size())
	log.Printf("image %dx%d, symbol at %v",
		m.Width(), m.Height(), m.EnclosingRectangle())
}

func write(m *bitmatrix.BitMatrix) {
	var w = os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := encoders[g.format](m, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

// utf8 writes two rows of pixels per line of half blocks, white
// pixels drawn, for dark terminals.
func utf8(m *bitmatrix.BitMatrix, w io.Writer) error {
	var b strings.Builder
	for y := 0; y < m.Height(); y += 2 {
		for x := 0; x < m.Width(); x++ {
			n := 0
			if m.Get(x, y) {
				n = 2
			}
			if y+1 >= m.Height() || m.Get(x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ascii(m *bitmatrix.BitMatrix, w io.Writer) error {
	width, height := m.Width(), m.Height()
	b := make([]byte, (width*2+1)*height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var p byte = ' '
			if m.Get(x, y) {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
