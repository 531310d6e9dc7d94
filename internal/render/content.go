package render

import (
	"fmt"
	"image"
)

// TextMode controls how a text label is laid out inside its slice.
type TextMode int

const (
	// TextAuto picks curved or horizontal based on the width available
	// at the label radius.
	TextAuto TextMode = iota
	TextCurved
	TextHorizontal
)

// ParseTextMode converts a config string ("auto", "curved",
// "horizontal") to a TextMode.
func ParseTextMode(s string) (TextMode, error) {
	switch s {
	case "", "auto":
		return TextAuto, nil
	case "curved":
		return TextCurved, nil
	case "horizontal":
		return TextHorizontal, nil
	default:
		return TextAuto, fmt.Errorf("unknown text mode: %q", s)
	}
}

func (m TextMode) String() string {
	switch m {
	case TextCurved:
		return "curved"
	case TextHorizontal:
		return "horizontal"
	default:
		return "auto"
	}
}

// Content is the tagged variant of what a slice displays. Exactly one of
// TextContent, ImageContent or LineContent; the renderer switches
// exhaustively over the concrete types.
type Content interface {
	content()
}

// TextContent is a text label.
type TextContent struct {
	Label string
	Mode  TextMode
}

// ImageContent is a picture drawn at the slice's content point.
type ImageContent struct {
	Image image.Image
}

// LineContent is a plain radial line, used for unlabeled filler slices.
type LineContent struct{}

func (TextContent) content()  {}
func (ImageContent) content() {}
func (LineContent) content()  {}

// Slice is one wedge of the wheel as handed to the rendering surface.
type Slice struct {
	Content Content
}
