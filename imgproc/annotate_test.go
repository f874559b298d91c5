package imgproc

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// OpenCV drawing functions reject images with more than 4 channels
const undrawableType = gocv.MatTypeCV8U + gocv.MatType(4<<3)

func TestOutlineAnnotator(t *testing.T) {
	var logs bytes.Buffer
	a := OutlineAnnotator{Log: zerolog.New(&logs)}

	img := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	markers, err := Markers([][]gocv.Point2f{square(10, 10, 50, 50)}, []int{7})
	require.NoError(t, err)

	require.NoError(t, a.Annotate(&img, markers))
	assert.Contains(t, logs.String(), `"id":7`)

	// center point is filled red (BGR order in the Mat)
	center := markers[0].Quad.Center()
	assert.Equal(t, uint8(255), img.GetVecbAt(center.Y, center.X)[2])
	// outline is green
	assert.Equal(t, uint8(255), img.GetVecbAt(10, 30)[1])
}

func TestOutlineAnnotator_NoMarkers(t *testing.T) {
	var logs bytes.Buffer
	a := OutlineAnnotator{Log: zerolog.New(&logs)}

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer img.Close()

	require.NoError(t, a.Annotate(&img, nil))
	assert.Empty(t, logs.String())
}

func TestOutlineAnnotator_DrawingError(t *testing.T) {
	a := OutlineAnnotator{Log: zerolog.Nop()}

	img := gocv.NewMatWithSize(100, 100, undrawableType)
	defer img.Close()

	markers, err := Markers([][]gocv.Point2f{square(10, 10, 50, 50)}, []int{7})
	require.NoError(t, err)

	err = a.Annotate(&img, markers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker 7")
}
