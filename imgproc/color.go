package imgproc

import (
	"image/color"
	"math"
)

type HSV struct {
	H uint32  // 0 <= H < 360
	S float64 // 0 <= S <= 1
	V float64 // 0 <= V <= 1
}

// Annotation palette
var (
	outlineColor = HSV{H: 120, S: 1, V: 1}.RGBA()
	centerColor  = HSV{H: 0, S: 1, V: 1}.RGBA()
	axisColors   = [3]color.RGBA{
		HSV{H: 0, S: 1, V: 1}.RGBA(),   // X
		HSV{H: 120, S: 1, V: 1}.RGBA(), // Y
		HSV{H: 240, S: 1, V: 1}.RGBA(), // Z
	}
)

// Converts an HSV color to RGBA, where `A` is implicitly set to 255 (solid)
func (col HSV) RGBA() color.RGBA {
	h := col.H % 360
	c := col.V * col.S
	x := c * (1 - math.Abs(math.Mod(float64(h)/60, 2)-1))
	m := col.V - c

	var rp, gp, bp float64 // R' G' B'
	switch {
	case h < 60:
		rp, gp, bp = c, x, 0
	case h < 120:
		rp, gp, bp = x, c, 0
	case h < 180:
		rp, gp, bp = 0, c, x
	case h < 240:
		rp, gp, bp = 0, x, c
	case h < 300:
		rp, gp, bp = x, 0, c
	default:
		rp, gp, bp = c, 0, x
	}

	r := uint8(math.Round((rp + m) * 255))
	g := uint8(math.Round((gp + m) * 255))
	b := uint8(math.Round((bp + m) * 255))

	return color.RGBA{r, g, b, 255}
}
