package imgproc

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func square(x0, y0, x1, y1 float32) []gocv.Point2f {
	return []gocv.Point2f{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestNewQuad(t *testing.T) {
	q, err := NewQuad(square(10, 10, 50, 50))
	require.NoError(t, err)

	assert.Equal(t, image.Pt(10, 10), q.TopLeft)
	assert.Equal(t, image.Pt(50, 10), q.TopRight)
	assert.Equal(t, image.Pt(50, 50), q.BottomRight)
	assert.Equal(t, image.Pt(10, 50), q.BottomLeft)
	assert.Equal(t, image.Pt(30, 30), q.Center())
	assert.Equal(t, image.Pt(10, -5), q.LabelOrigin())
}

func TestNewQuad_Truncates(t *testing.T) {
	q, err := NewQuad([]gocv.Point2f{{X: 10.9, Y: 10.2}, {X: 50.5, Y: 10}, {X: 51.7, Y: 49.9}, {X: 10, Y: 50}})
	require.NoError(t, err)

	assert.Equal(t, image.Pt(10, 10), q.TopLeft)
	assert.Equal(t, image.Pt(51, 49), q.BottomRight)
	// (10+51)/2 truncates to 30
	assert.Equal(t, image.Pt(30, 29), q.Center())
}

func TestNewQuad_WrongCornerCount(t *testing.T) {
	_, err := NewQuad([]gocv.Point2f{{X: 1, Y: 1}})
	assert.Error(t, err)
}

func TestQuadEdges(t *testing.T) {
	q, err := NewQuad(square(0, 0, 4, 4))
	require.NoError(t, err)

	edges := q.Edges()
	assert.Equal(t, q.TopLeft, edges[0][0])
	assert.Equal(t, q.TopLeft, edges[3][1])
	for i := 0; i < 3; i++ {
		assert.Equal(t, edges[i][1], edges[i+1][0])
	}
}

func TestMarkers(t *testing.T) {
	markers, err := Markers([][]gocv.Point2f{square(10, 10, 50, 50), square(60, 60, 80, 80)}, []int{7, 3})
	require.NoError(t, err)
	require.Len(t, markers, 2)

	assert.Equal(t, 7, markers[0].ID)
	assert.Equal(t, image.Pt(30, 30), markers[0].Quad.Center())
	assert.Equal(t, 3, markers[1].ID)
	assert.Equal(t, image.Pt(70, 70), markers[1].Quad.Center())
}

func TestMarkers_Invalid(t *testing.T) {
	_, err := Markers([][]gocv.Point2f{square(0, 0, 1, 1)}, nil)
	assert.Error(t, err)

	_, err = Markers([][]gocv.Point2f{square(0, 0, 1, 1)[:3]}, []int{1})
	assert.Error(t, err)

	markers, err := Markers(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, markers)
}
