package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mlefebvre/SpinGo/internal/logic/geometry"
)

var (
	colorBgPrimary   = color.RGBA{54, 57, 63, 255}
	colorBgSecondary = color.RGBA{47, 49, 54, 255}
	colorOutline     = color.RGBA{32, 34, 37, 255}
	colorHub         = color.RGBA{88, 101, 242, 255}
	colorPointer     = color.RGBA{237, 66, 69, 255}
)

const (
	fontSize      = 13.0
	labelMargin   = 8.0  // horizontal label margin inside the chord
	labelRadiusR  = 0.62 // label distance from center, as a fraction of the radius
	hubRadiusR    = 0.18
	borderRadiusR = 0.95
	pointerSize   = 26.0
)

// GGSurface is the reference Surface implementation, rasterizing the
// wheel onto an in-memory image with fogleman/gg. It keeps the last
// rendered frame for capture.
type GGSurface struct {
	size  int
	pos   geometry.StartPosition
	face  font.Face
	image image.Image
}

// NewGGSurface creates a square surface of the given pixel size with the
// pointer drawn at pos.
func NewGGSurface(size int, pos geometry.StartPosition) (*GGSurface, error) {
	if size <= 0 {
		return nil, fmt.Errorf("surface size must be positive, got %d", size)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(regular, &truetype.Options{
		Size:    fontSize,
		Hinting: font.HintingFull,
	})
	return &GGSurface{size: size, pos: pos, face: face}, nil
}

// Image returns the last rendered frame, or nil before the first Draw.
func (s *GGSurface) Image() image.Image {
	return s.image
}

// screenAngle returns the gg angle (y grows downward) at which the
// pointer position sits on screen.
func screenAngle(pos geometry.StartPosition) float64 {
	switch pos {
	case geometry.Right:
		return 0
	case geometry.Bottom:
		return math.Pi / 2
	case geometry.Left:
		return math.Pi
	default: // top
		return -math.Pi / 2
	}
}

// Draw renders the full wheel at the given rotation.
func (s *GGSurface) Draw(slices []Slice, rotation float64) error {
	n := len(slices)
	if n == 0 {
		return fmt.Errorf("cannot draw a wheel with no slices")
	}

	dc := gg.NewContext(s.size, s.size)
	cx := float64(s.size) / 2
	cy := float64(s.size) / 2
	outer := float64(s.size)/2 - pointerSize - 4
	inner := outer * borderRadiusR

	// Outline ring.
	dc.SetColor(colorOutline)
	dc.DrawCircle(cx, cy, outer)
	dc.Fill()

	dc.SetFontFace(s.face)

	// The wheel-angle convention puts slice 0's leading edge at the
	// pointer's base angle when rotation is zero; offset maps it onto
	// the pointer's on-screen location.
	offset := screenAngle(s.pos) - s.pos.Angle()
	step := geometry.RadiansPerSlice(n)

	for i, slice := range slices {
		start := offset + rotation + step*float64(i)
		end := start + step

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, inner, start, end)
		dc.ClosePath()
		if i%2 == 0 {
			dc.SetColor(colorBgPrimary)
		} else {
			dc.SetColor(colorBgSecondary)
		}
		dc.Fill()

		if err := s.drawContent(dc, slice.Content, n, cx, cy, inner, (start+end)/2); err != nil {
			return fmt.Errorf("slice %d: %w", i, err)
		}
	}

	// Division lines.
	dc.SetLineWidth(2)
	dc.SetColor(colorOutline)
	for i := 0; i < n; i++ {
		angle := offset + rotation + step*float64(i)
		x, y := geometry.PolarToCartesian(inner, angle)
		dc.MoveTo(cx, cy)
		dc.LineTo(cx+x, cy+y)
		dc.Stroke()
	}

	// Hub.
	dc.SetColor(colorHub)
	dc.DrawCircle(cx, cy, outer*hubRadiusR)
	dc.Fill()
	dc.SetLineWidth(2)
	dc.SetColor(colorOutline)
	dc.DrawCircle(cx, cy, outer*hubRadiusR)
	dc.Stroke()

	s.drawPointer(dc, cx, cy, outer)

	s.image = dc.Image()
	return nil
}

// drawContent dispatches on the slice content variant. The switch is
// exhaustive; an unknown type is an error, not a silent skip.
func (s *GGSurface) drawContent(dc *gg.Context, content Content, n int, cx, cy, radius, midAngle float64) error {
	switch c := content.(type) {
	case TextContent:
		s.drawText(dc, c, n, cx, cy, radius, midAngle)
	case ImageContent:
		x, y := geometry.PolarToCartesian(radius*labelRadiusR, midAngle)
		dc.DrawImageAnchored(c.Image, int(cx+x), int(cy+y), 0.5, 0.5)
	case LineContent:
		x, y := geometry.PolarToCartesian(radius*labelRadiusR, midAngle)
		dc.SetLineWidth(2)
		dc.SetColor(colorOutline)
		dc.MoveTo(cx, cy)
		dc.LineTo(cx+x, cy+y)
		dc.Stroke()
	case nil:
		// An empty slice draws nothing but its background.
	default:
		return fmt.Errorf("unknown slice content %T", content)
	}
	return nil
}

func (s *GGSurface) drawText(dc *gg.Context, c TextContent, n int, cx, cy, radius, midAngle float64) {
	labelRadius := radius * labelRadiusR
	mode := c.Mode
	if mode == TextAuto {
		w, _ := dc.MeasureString(c.Label)
		if w > geometry.AvailableWidth(labelRadius, n, labelMargin) {
			mode = TextCurved
		} else {
			mode = TextHorizontal
		}
	}

	dc.SetColor(color.White)
	if mode == TextCurved {
		s.drawCurvedText(dc, c.Label, cx, cy, labelRadius, midAngle)
		return
	}

	x, y := geometry.PolarToCartesian(labelRadius, midAngle)
	dc.Push()
	dc.Translate(cx+x, cy+y)
	// Keep labels on the left half upright.
	if a := geometry.NormalizeAngle(midAngle); a > math.Pi/2 && a < 3*math.Pi/2 {
		dc.Rotate(midAngle + math.Pi)
	} else {
		dc.Rotate(midAngle)
	}
	dc.DrawStringAnchored(c.Label, 0, 0, 0.5, 0.5)
	dc.Pop()
}

// drawCurvedText lays the label character by character along the arc at
// the given radius, centered on midAngle.
func (s *GGSurface) drawCurvedText(dc *gg.Context, label string, cx, cy, radius, midAngle float64) {
	total := 0.0
	widths := make([]float64, 0, len(label))
	for _, r := range label {
		w, _ := dc.MeasureString(string(r))
		widths = append(widths, w)
		total += w
	}
	angle := midAngle - (total/radius)/2

	i := 0
	for _, r := range label {
		w := widths[i]
		i++
		charAngle := angle + (w/radius)/2
		x, y := geometry.PolarToCartesian(radius, charAngle)
		dc.Push()
		dc.Translate(cx+x, cy+y)
		dc.Rotate(charAngle + math.Pi/2)
		dc.DrawStringAnchored(string(r), 0, 0, 0.5, 0.5)
		dc.Pop()
		angle += w / radius
	}
}

// drawPointer draws the fixed pin at the configured start position,
// pointing inward.
func (s *GGSurface) drawPointer(dc *gg.Context, cx, cy, outer float64) {
	angle := screenAngle(s.pos)
	tipX, tipY := geometry.PolarToCartesian(outer-2, angle)
	baseX, baseY := geometry.PolarToCartesian(outer+pointerSize-2, angle)
	// Perpendicular half-width of the pointer base.
	px, py := geometry.PolarToCartesian(pointerSize/2, angle+math.Pi/2)

	dc.NewSubPath()
	dc.MoveTo(cx+tipX, cy+tipY)
	dc.LineTo(cx+baseX+px, cy+baseY+py)
	dc.LineTo(cx+baseX-px, cy+baseY-py)
	dc.ClosePath()

	dc.SetColor(colorPointer)
	dc.FillPreserve()
	dc.SetLineWidth(2)
	dc.SetColor(colorOutline)
	dc.Stroke()
}
