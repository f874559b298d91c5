package imgproc

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Annotator draws detections onto a frame and reports them.
type Annotator interface {
	Annotate(img *gocv.Mat, markers []Marker) error
}

// OutlineAnnotator draws each marker's outline, center point and ID.
type OutlineAnnotator struct {
	Log zerolog.Logger
}

func (a OutlineAnnotator) Annotate(img *gocv.Mat, markers []Marker) error {
	for _, marker := range markers {
		a.Log.Info().Int("id", marker.ID).Msg("ArUco marker detected")

		if err := drawOutline(img, marker); err != nil {
			return fmt.Errorf("marker %d: %w", marker.ID, err)
		}
	}
	return nil
}

func drawOutline(img *gocv.Mat, marker Marker) error {
	for _, edge := range marker.Quad.Edges() {
		if err := gocv.Line(img, edge[0], edge[1], outlineColor, 2); err != nil {
			return err
		}
	}
	if err := gocv.Circle(img, marker.Quad.Center(), 4, centerColor, -1); err != nil {
		return err
	}
	return gocv.PutText(img, strconv.Itoa(marker.ID), marker.Quad.LabelOrigin(),
		gocv.FontHersheySimplex, 0.5, outlineColor, 2)
}
