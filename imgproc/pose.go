package imgproc

import (
	"errors"
	"fmt"
	"image"

	"github.com/DaniruKun/aruco-cam/calib"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// cv::SOLVEPNP_IPPE_SQUARE, which expects the corner order used by squareObjectPoints
const solvePnPIPPESquare = 7

// Pose is a marker's rotation (Rodrigues vector) and translation relative to the camera
type Pose struct {
	Rvec [3]float64
	Tvec [3]float64
}

type PoseEstimator interface {
	Estimate(corners []gocv.Point2f) (Pose, error)
}

// SolvePnPEstimator estimates single-marker poses from the marker side length
// and the camera calibration.
type SolvePnPEstimator struct {
	MarkerLength float64
	k            gocv.Mat
	d            gocv.Mat
}

func NewSolvePnPEstimator(c calib.Coefficients, markerLength float64) *SolvePnPEstimator {
	k, d := CalibrationMats(c)
	return &SolvePnPEstimator{MarkerLength: markerLength, k: k, d: d}
}

func (e *SolvePnPEstimator) Close() error {
	return errors.Join(e.k.Close(), e.d.Close())
}

// Marker corners in the marker's own frame, centered on the marker
func squareObjectPoints(length float64) []gocv.Point3f {
	half := float32(length / 2)
	return []gocv.Point3f{
		{X: -half, Y: half, Z: 0},
		{X: half, Y: half, Z: 0},
		{X: half, Y: -half, Z: 0},
		{X: -half, Y: -half, Z: 0},
	}
}

func (e *SolvePnPEstimator) Estimate(corners []gocv.Point2f) (Pose, error) {
	if len(corners) != 4 {
		return Pose{}, errors.New("pose estimation needs exactly 4 corners")
	}

	objectPoints := gocv.NewPoint3fVectorFromPoints(squareObjectPoints(e.MarkerLength))
	defer objectPoints.Close()
	imagePoints := gocv.NewPoint2fVectorFromPoints(corners)
	defer imagePoints.Close()

	rvec := gocv.NewMat()
	defer rvec.Close()
	tvec := gocv.NewMat()
	defer tvec.Close()

	if ok := gocv.SolvePnP(objectPoints, imagePoints, e.k, e.d, &rvec, &tvec, false, solvePnPIPPESquare); !ok {
		return Pose{}, errors.New("solvePnP found no solution")
	}

	var pose Pose
	for i := 0; i < 3; i++ {
		pose.Rvec[i] = rvec.GetDoubleAt(i, 0)
		pose.Tvec[i] = tvec.GetDoubleAt(i, 0)
	}
	return pose, nil
}

// CalibrationMats converts calibration coefficients to CV_64F matrices.
// The caller closes both.
func CalibrationMats(c calib.Coefficients) (k, d gocv.Mat) {
	k = gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			k.SetDoubleAt(row, col, c.K[row][col])
		}
	}

	dist := c.Distortion()
	d = gocv.NewMatWithSize(1, len(dist), gocv.MatTypeCV64F)
	for i, v := range dist {
		d.SetDoubleAt(0, i, v)
	}
	return k, d
}

// AxisPoints projects the pose origin and the ends of its X, Y and Z axes.
// ok is false when any of those points is not in front of the camera.
func AxisPoints(c calib.Coefficients, pose Pose, length float64) (origin image.Point, ends [3]image.Point, ok bool) {
	points := [4][3]float64{{0, 0, 0}, {length, 0, 0}, {0, length, 0}, {0, 0, length}}

	var projected [4]image.Point
	for i, p := range points {
		x, y, inFront := c.Project(p, pose.Rvec, pose.Tvec)
		if !inFront {
			return image.Point{}, ends, false
		}
		projected[i] = image.Point{X: int(x), Y: int(y)}
	}

	copy(ends[:], projected[1:])
	return projected[0], ends, true
}

// PoseAnnotator draws the detected markers and a 3-axis indicator at each pose.
type PoseAnnotator struct {
	Calibration calib.Coefficients
	Estimator   PoseEstimator
	AxisLength  float64
	Log         zerolog.Logger
}

func (a PoseAnnotator) Annotate(img *gocv.Mat, markers []Marker) error {
	if len(markers) == 0 {
		return nil
	}

	corners := make([][]gocv.Point2f, len(markers))
	ids := make([]int, len(markers))
	for i, marker := range markers {
		corners[i] = marker.Corners
		ids[i] = marker.ID
	}
	if err := gocv.ArucoDrawDetectedMarkers(*img, corners, ids, gocv.NewScalar(0, 255, 0, 0)); err != nil {
		return fmt.Errorf("drawing markers %v: %w", ids, err)
	}

	for _, marker := range markers {
		a.Log.Info().Int("id", marker.ID).Msg("ArUco marker detected")

		pose, err := a.Estimator.Estimate(marker.Corners)
		if err != nil {
			a.Log.Warn().Err(err).Int("id", marker.ID).Msg("pose estimation failed")
			continue
		}
		a.Log.Info().
			Int("id", marker.ID).
			Floats64("rvec", pose.Rvec[:]).
			Floats64("tvec", pose.Tvec[:]).
			Msg("marker pose")

		if err := a.drawAxes(img, pose); err != nil {
			return fmt.Errorf("marker %d: %w", marker.ID, err)
		}
	}
	return nil
}

func (a PoseAnnotator) drawAxes(img *gocv.Mat, pose Pose) error {
	origin, ends, ok := AxisPoints(a.Calibration, pose, a.AxisLength)
	if !ok {
		a.Log.Debug().Floats64("tvec", pose.Tvec[:]).Msg("axes not in front of the camera, skipped")
		return nil
	}
	for i, end := range ends {
		if err := gocv.Line(img, origin, end, axisColors[i], 3); err != nil {
			return err
		}
	}
	return nil
}
