package config

import (
	"fmt"
	"image/color"
	"strings"
)

// BodyKind selects what a spawn request creates.
type BodyKind int

const (
	KindPlanet BodyKind = iota
	KindAsteroid
)

func (k BodyKind) String() string {
	if k == KindAsteroid {
		return "asteroid"
	}
	return "planet"
}

// ParseKind maps "asteroid" to KindAsteroid and anything else to KindPlanet.
func ParseKind(s string) BodyKind {
	if strings.EqualFold(strings.TrimSpace(s), "asteroid") {
		return KindAsteroid
	}
	return KindPlanet
}

// SpawnRequest is a one-shot event: the simulator consumes it at the top of
// the next step and then forgets it. Mass, Radius and Color only apply to
// planets.
type SpawnRequest struct {
	Kind      BodyKind
	X, Y      float32
	VelX      float32
	VelY      float32
	AutoOrbit bool
	Mass      float32
	Radius    float32
	Color     color.RGBA
}

// ParseColor reads a #rrggbb string into an opaque RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{R: r, G: g, B: b, A: 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, hex)
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
