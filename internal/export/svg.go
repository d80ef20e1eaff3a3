package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// SnapshotOptions controls SnapshotToSVG.
type SnapshotOptions struct {
	Size      int // output side in pixels
	ShowStar  bool
	StarX     float32
	StarY     float32
	DotRadius float64
}

func DefaultSnapshotOptions() SnapshotOptions {
	cx, cy := config.Center()
	return SnapshotOptions{Size: 600, ShowStar: true, StarX: cx, StarY: cy, DotRadius: 0.8}
}

// SnapshotToSVG draws a snapshot with the domain scaled onto a square image.
// Planets keep their own colors.
func SnapshotToSVG(snap *dynamo.Snapshot, opts SnapshotOptions) string {
	if snap == nil {
		return ""
	}

	size := float64(opts.Size)
	scale := size / float64(config.DomainSize)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#a0a8b8">
`, opts.Size, opts.Size, opts.Size, opts.Size))

	for i := range snap.PosX {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, float64(snap.PosX[i])*scale, float64(snap.PosY[i])*scale, opts.DotRadius))
	}
	sb.WriteString("</g>\n")

	if opts.ShowStar {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#ffd75f"/>
`, float64(opts.StarX)*scale, float64(opts.StarY)*scale, 3*scale))
	}

	for _, p := range snap.Planets {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(p.X)*scale, float64(p.Y)*scale, math.Max(1, float64(p.Radius)*scale), config.FormatColor(p.Color)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline spanning the image, scaled to
// their range.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
