package lexisphere

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default label tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorHighlight is the default tint applied to the hovered label.
var ColorHighlight = Color{1, 0.85, 0.2, 1}

// Mix linearly interpolates between c and other by t in [0, 1].
func (c Color) Mix(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WhitePixel is a 1x1 white image used for solid-color quads (edges, debug).
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when a pointer button is pressed
	EventPointerUp                    // fires when a pointer button is released
	EventPointerMove                  // fires when the pointer moves
	EventClick                        // fires when a press/release pair stays within the click threshold
	EventDragStart                    // fires when movement exceeds the click threshold
	EventDrag                         // fires each frame while dragging
	EventDragEnd                      // fires when the pointer is released after dragging
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// TransitionMode selects how the two phases of a node-focus transition are
// sequenced: translate-then-expand, or both at once.
type TransitionMode uint8

const (
	// TransitionSerial runs the camera translate to completion before the
	// neighborhood expansion begins.
	TransitionSerial TransitionMode = iota
	// TransitionParallel starts both timelines at once; each runs to its own
	// completion independently.
	TransitionParallel
)

// String returns "serial" or "parallel".
func (m TransitionMode) String() string {
	if m == TransitionParallel {
		return "parallel"
	}
	return "serial"
}

// ParseTransitionMode maps "serial"/"parallel" to a TransitionMode.
// Unknown strings fall back to serial.
func ParseTransitionMode(s string) TransitionMode {
	if s == "parallel" {
		return TransitionParallel
	}
	return TransitionSerial
}
