package label

import (
	"fmt"
	"io"
	"strings"

	"github.com/fogleman/gg"
)

// poker card size of 63.5x88.9mm at 300 DPI
const (
	width  = 750
	height = 1050
	margin = 56
)

// FontFile is the face used for the card text. Override when the host
// keeps its fonts somewhere else.
var FontFile = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// Create renders the given text as a playing card style label and
// writes it as a PNG to out.
func Create(text string, out io.Writer) error {
	l := gg.NewContext(width, height)

	l.SetRGB(1, 1, 1)
	l.Clear()
	l.SetRGB(0, 0, 0)
	l.SetLineWidth(6)
	l.DrawRoundedRectangle(margin, margin, width-2*margin, height-2*margin, 40)
	l.Stroke()

	if err := renderString(l, strings.ToUpper(text), 64, height/2); err != nil {
		return err
	}
	l.SetRGB(0.4, 0.4, 0.4)
	if err := renderString(l, "IS THIS YOUR CARD?", 28, height-2*margin); err != nil {
		return err
	}

	if err := l.EncodePNG(out); err != nil {
		return fmt.Errorf("could not render PNG: %v", err.Error())
	}
	return nil
}

func renderString(c *gg.Context, s string, size, y float64) error {
	if err := c.LoadFontFace(FontFile, size); err != nil {
		return fmt.Errorf("could not load the font: %v", err.Error())
	}
	lines := c.WordWrap(s, width-(width/5))
	for i, line := range lines {
		c.DrawStringAnchored(line, float64(width)/2, y+float64(i)*size*1.2, 0.5, 0.5)
	}
	return nil
}
