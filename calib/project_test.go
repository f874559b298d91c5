package calib

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotation(t *testing.T) {
	identity := Rotation([3]float64{})
	assert.Equal(t, [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, identity)

	// 90 degrees about Z maps X onto Y
	r := Rotation([3]float64{0, 0, math.Pi / 2})
	assert.InDelta(t, 0, r[0][0], 1e-9)
	assert.InDelta(t, 1, r[1][0], 1e-9)
	assert.InDelta(t, -1, r[0][1], 1e-9)
	assert.InDelta(t, 1, r[2][2], 1e-9)
}

func TestProject(t *testing.T) {
	k := [3][3]float64{{500, 0, 320}, {0, 500, 240}, {0, 0, 1}}

	tests := []struct {
		name  string
		dist  []float64
		point [3]float64
		tvec  [3]float64
		wantX float64
		wantY float64
	}{
		{"principal point", []float64{0, 0, 0, 0, 0}, [3]float64{0, 0, 0}, [3]float64{0, 0, 100}, 320, 240},
		{"offset point", []float64{0, 0, 0, 0}, [3]float64{10, -20, 0}, [3]float64{0, 0, 100}, 370, 140},
		{"radial distortion", []float64{0.1}, [3]float64{10, 0, 0}, [3]float64{0, 0, 100}, 320 + 500*0.1*1.001, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(k, tt.dist)
			require.NoError(t, err)

			x, y, ok := c.Project(tt.point, [3]float64{}, tt.tvec)
			require.True(t, ok)
			assert.InDelta(t, tt.wantX, x, 1e-6)
			assert.InDelta(t, tt.wantY, y, 1e-6)
		})
	}
}

func TestProject_NotInFrontOfCamera(t *testing.T) {
	c, err := New([3][3]float64{{500, 0, 320}, {0, 500, 240}, {0, 0, 1}}, []float64{0, 0, 0, 0, 0})
	require.NoError(t, err)

	tests := []struct {
		name  string
		point [3]float64
		tvec  [3]float64
	}{
		{"behind the camera", [3]float64{10, 10, 0}, [3]float64{0, 0, -100}},
		{"on the camera plane", [3]float64{10, 10, 0}, [3]float64{0, 0, 0}},
		{"axis tip crosses the camera plane", [3]float64{0, 0, -25}, [3]float64{0, 0, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := c.Project(tt.point, [3]float64{}, tt.tvec)
			assert.False(t, ok)
			assert.Zero(t, x)
			assert.Zero(t, y)
		})
	}
}
