package testing

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	pngPadding    = 8
	pngLineHeight = 16
	pngMinWidth   = 64
)

// RenderPNG rasterizes the text content of the mounted tree, one
// widgets.Text per line, and writes it to w as a PNG.
func (t *WidgetTester) RenderPNG(w io.Writer) error {
	return RenderTextPNG(w, t.Texts())
}

// RenderTextPNG draws lines in black on a white background using a fixed
// 7x13 bitmap font and encodes the image as PNG.
func RenderTextPNG(w io.Writer, lines []string) error {
	face := basicfont.Face7x13
	width := pngMinWidth
	for _, line := range lines {
		if adv := font.MeasureString(face, line).Ceil() + 2*pngPadding; adv > width {
			width = adv
		}
	}
	height := 2*pngPadding + len(lines)*pngLineHeight
	if height < pngLineHeight {
		height = pngLineHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(pngPadding, pngPadding+(i+1)*pngLineHeight-face.Descent)
		drawer.DrawString(line)
	}
	return png.Encode(w, img)
}
