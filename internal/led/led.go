// Package led drives the prop's WS2812B indicator strip. The real
// implementation encodes frames onto an SPI device; the fake implementation
// records calls for tests.
package led

import "time"

// Color is one of the prop's indicator colors.
type Color string

const (
	Off    Color = "off"
	Purple Color = "purple"
	Blue   Color = "blue"
	Red    Color = "red"
	Green  Color = "green"
)

// FrameDelay is the per-pixel delay during a sweep.
const FrameDelay = 50 * time.Millisecond

// Indicator is the visual feedback capability. Fill is fire-and-forget;
// Sweep blocks for the duration of the animation.
type Indicator interface {
	// Fill sets the entire strip to a single color.
	Fill(c Color) error

	// Sweep runs a single chase animation out and back along the strip
	// in the given color, blanking behind the moving pixel. Blocks for
	// 2 * strip length * FrameDelay.
	Sweep(c Color) error

	// Close blanks the strip and releases resources.
	Close() error
}

// rgb is a color triplet at full brightness.
type rgb struct{ r, g, b uint8 }

var palette = map[Color]rgb{
	Off:    {0, 0, 0},
	Purple: {128, 0, 128},
	Blue:   {0, 0, 255},
	Red:    {255, 0, 0},
	Green:  {0, 128, 0},
}

// colorRGB returns the triplet for c, treating unknown colors as Off.
func colorRGB(c Color) rgb {
	return palette[c]
}
