package viewer

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
)

// WriteSVG writes the frame as a standalone SVG document
func WriteSVG(w io.Writer, f Frame) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", svgColor(f.Background))

	for _, p := range f.Primitives {
		switch v := p.(type) {
		case Line:
			fmt.Fprintf(bw, `<line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="%g"/>`+"\n",
				v.From.X, v.From.Y, v.To.X, v.To.Y, svgColor(v.Color), v.Width)
		case Circle:
			fmt.Fprintf(bw, `<circle cx="%.3f" cy="%.3f" r="%g" fill="%s"/>`+"\n",
				v.Center.X, v.Center.Y, v.Radius, svgColor(v.Fill))
		case Text:
			weight := ""
			if v.Bold {
				weight = ` font-weight="bold"`
			}
			fmt.Fprintf(bw, `<text x="%.3f" y="%.3f" text-anchor="%s" fill="%s" font-size="%g"%s>`,
				v.Pos.X, v.Pos.Y, v.Anchor, svgColor(v.Color), v.Size, weight)
			if err := xml.EscapeText(bw, []byte(v.Content)); err != nil {
				return fmt.Errorf("failed to escape label: %w", err)
			}
			bw.WriteString("</text>\n")
		}
	}

	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
