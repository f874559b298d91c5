package imgproc

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// labelOffset is how far above the top-left corner the marker ID is drawn
const labelOffset = 15

// Quad holds a marker's corners as integer pixel coordinates, in the order
// the detector returns them.
type Quad struct {
	TopLeft     image.Point
	TopRight    image.Point
	BottomRight image.Point
	BottomLeft  image.Point
}

// NewQuad converts the four detector corners (top-left, top-right,
// bottom-right, bottom-left) to integer points.
func NewQuad(corners []gocv.Point2f) (Quad, error) {
	if len(corners) != 4 {
		return Quad{}, fmt.Errorf("marker has %d corners, want 4", len(corners))
	}
	toPoint := func(p gocv.Point2f) image.Point {
		return image.Point{X: int(p.X), Y: int(p.Y)}
	}
	return Quad{
		TopLeft:     toPoint(corners[0]),
		TopRight:    toPoint(corners[1]),
		BottomRight: toPoint(corners[2]),
		BottomLeft:  toPoint(corners[3]),
	}, nil
}

// Center is the midpoint of the top-left and bottom-right corners.
func (q Quad) Center() image.Point {
	return image.Point{
		X: int(float64(q.TopLeft.X+q.BottomRight.X) / 2.0),
		Y: int(float64(q.TopLeft.Y+q.BottomRight.Y) / 2.0),
	}
}

func (q Quad) LabelOrigin() image.Point {
	return image.Point{X: q.TopLeft.X, Y: q.TopLeft.Y - labelOffset}
}

// Edges returns the outline segments, closing back on the top-left corner
func (q Quad) Edges() [4][2]image.Point {
	return [4][2]image.Point{
		{q.TopLeft, q.TopRight},
		{q.TopRight, q.BottomRight},
		{q.BottomRight, q.BottomLeft},
		{q.BottomLeft, q.TopLeft},
	}
}

// Marker is one detection in a single frame.
type Marker struct {
	ID      int
	Corners []gocv.Point2f
	Quad    Quad
}

// Markers pairs per-marker corners with their IDs, keeping detector order.
func Markers(corners [][]gocv.Point2f, ids []int) ([]Marker, error) {
	if len(corners) != len(ids) {
		return nil, fmt.Errorf("detector returned %d corner sets for %d ids", len(corners), len(ids))
	}

	markers := make([]Marker, 0, len(ids))
	for i, markerCorners := range corners {
		quad, err := NewQuad(markerCorners)
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", ids[i], err)
		}
		markers = append(markers, Marker{ID: ids[i], Corners: markerCorners, Quad: quad})
	}
	return markers, nil
}
