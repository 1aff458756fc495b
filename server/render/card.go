package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

const (
	cardMargin     = 16
	cardLineHeight = 18
)

var (
	cardBackground = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	cardText       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	cardTitle      = color.RGBA{R: 0x45, G: 0xa0, B: 0x49, A: 0xff}
	cardError      = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// CardPNG draws a non-graph Display as a text card: the heading, the result
// lines, the LaTeX source and any error line. Lines too wide for the card
// are wrapped.
func CardPNG(d Display, width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(cardBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	cols := (width - 2*cardMargin) / face.Advance
	y := cardMargin + face.Ascent

	write := func(text string, col color.Color) {
		dr := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
		for _, line := range wrap(ASCII(text), cols) {
			if y > height-cardMargin {
				return
			}
			dr.Dot = fixed.P(cardMargin, y)
			dr.DrawString(line)
			y += cardLineHeight
		}
	}

	write(d.Title, cardTitle)
	y += cardLineHeight / 2
	for _, l := range d.Lines {
		write(l, cardText)
	}
	if d.LaTeX != "" {
		write("LaTeX: "+d.LaTeX, cardText)
	}
	if d.Error != "" {
		write(d.Error, cardError)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var asciiReplacer = strings.NewReplacer(
	"⚠️", "!",
	"⚠", "!",
	"×", "x",
	"÷", "/",
	"°", " deg",
	"≈", "~",
	"∫", "Integral",
	"📈", "",
	"📐", "",
	"🧮", "",
	"’", "'",
)

// ASCII folds s to printable ASCII for fonts without Unicode coverage.
// Compatibility forms such as mathematical italic letters fold to their
// plain letter; anything else outside ASCII is dropped.
func ASCII(s string) string {
	s = norm.NFKD.String(asciiReplacer.Replace(s))
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsPrint(r) || r == ' ') {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func wrap(s string, cols int) []string {
	if cols <= 0 || len(s) <= cols {
		return []string{s}
	}
	var out []string
	for len(s) > cols {
		cut := strings.LastIndexByte(s[:cols], ' ')
		if cut <= 0 {
			cut = cols
		}
		out = append(out, s[:cut])
		s = strings.TrimLeft(s[cut:], " ")
	}
	return append(out, s)
}
