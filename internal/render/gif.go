package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
)

// gifPalette covers the fixed wheel colors plus a grayscale ramp for
// font antialiasing.
var gifPalette = buildPalette()

func buildPalette() color.Palette {
	p := color.Palette{
		color.Black,
		color.White,
		colorBgPrimary,
		colorBgSecondary,
		colorOutline,
		colorHub,
		colorPointer,
	}
	for v := 16; v < 256; v += 16 {
		g := uint8(v)
		p = append(p, color.RGBA{g, g, g, 255})
	}
	return p
}

// GIFRecorder captures surface frames and encodes them as an animated
// GIF. One Capture call per animation tick.
type GIFRecorder struct {
	surface *GGSurface
	delay   int // per frame, in 1/100s
	frames  []*image.Paletted
	delays  []int
}

// NewGIFRecorder creates a recorder over the given surface at the given
// frame rate.
func NewGIFRecorder(surface *GGSurface, fps int) (*GIFRecorder, error) {
	if fps <= 0 || fps > 100 {
		return nil, fmt.Errorf("fps must be in 1..100, got %d", fps)
	}
	return &GIFRecorder{
		surface: surface,
		delay:   100 / fps,
	}, nil
}

// Capture palettizes the surface's last rendered frame and appends it.
// A no-op before the first Draw.
func (r *GIFRecorder) Capture() {
	src := r.surface.Image()
	if src == nil {
		return
	}
	bounds := src.Bounds()
	paletted := image.NewPaletted(bounds, gifPalette)
	draw.Draw(paletted, bounds, src, bounds.Min, draw.Src)
	r.frames = append(r.frames, paletted)
	r.delays = append(r.delays, r.delay)
}

// FrameCount returns the number of captured frames.
func (r *GIFRecorder) FrameCount() int {
	return len(r.frames)
}

// Encode writes the captured frames as an animated GIF.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames captured")
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image: r.frames,
		Delay: r.delays,
	})
}
