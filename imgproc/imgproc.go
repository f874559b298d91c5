package imgproc

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Camera is the part of gocv.VideoCapture the capture loop needs
type Camera interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Detector finds markers in a frame. *gocv.ArucoDetector satisfies it.
type Detector interface {
	DetectMarkers(input gocv.Mat) (corners [][]gocv.Point2f, ids []int, rejected [][]gocv.Point2f)
}

// ImageWriter persists a frame, reporting success like gocv.IMWrite
type ImageWriter func(name string, img gocv.Mat) bool

// Result summarizes a finished capture loop
type Result struct {
	Frames  int      // Frames captured and annotated
	Markers []Marker // Detections in the last frame
	Saved   bool     // Whether the result image was written
}

// Loop runs the capture, detect, annotate cycle against one camera.
// It does not own the camera; the caller closes it.
type Loop struct {
	Camera    Camera
	Detector  Detector
	Annotator Annotator
	Log       zerolog.Logger
	Write     ImageWriter // Defaults to gocv.IMWrite
}

// Run captures `iterations` frames, annotating each, then writes the last
// annotated frame to `output`. A frame that cannot be read ends the run.
func (l *Loop) Run(iterations int, output string) (Result, error) {
	var res Result

	write := l.Write
	if write == nil {
		write = gocv.IMWrite
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for remaining := iterations; remaining > 0; remaining-- {
		l.Log.Info().Int("remaining", remaining).Msg("iterations to do")
		l.Log.Info().Msg("capturing image")

		start := time.Now()

		if ok := l.Camera.Read(&frame); !ok || frame.Empty() {
			return res, fmt.Errorf("%w: cannot capture image from camera", ErrDevice)
		}

		// rejected candidates are not used
		corners, ids, _ := l.Detector.DetectMarkers(frame)

		markers, err := Markers(corners, ids)
		if err != nil {
			return res, err
		}
		if err := l.Annotator.Annotate(&frame, markers); err != nil {
			return res, fmt.Errorf("annotating frame: %w", err)
		}

		l.Log.Info().Dur("elapsed", time.Since(start)).Msg("consumed")

		res.Frames++
		res.Markers = markers
	}

	if frame.Empty() {
		l.Log.Warn().Str("path", output).Msg("no frame captured, result image not written")
		return res, nil
	}

	l.Log.Info().Str("path", output).Msg("writing result image")
	if ok := write(output, frame); !ok {
		return res, fmt.Errorf("cannot write result image %s", output)
	}
	res.Saved = true

	return res, nil
}

// OpenCamera opens a capture device and requests a frame size when width and
// height are non-zero.
func OpenCamera(device, width, height int) (*gocv.VideoCapture, error) {
	camera, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open camera %d: %v", ErrDevice, device, err)
	}
	if !camera.IsOpened() {
		camera.Close()
		return nil, fmt.Errorf("%w: cannot open camera %d", ErrDevice, device)
	}

	if width > 0 {
		camera.Set(gocv.VideoCaptureFrameWidth, float64(width))
	}
	if height > 0 {
		camera.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	return camera, nil
}

// NewDetector builds an ArUco detector with default parameters for the dictionary.
// The caller closes it.
func NewDetector(dict Dictionary) (*gocv.ArucoDetector, error) {
	code, err := dict.ArucoCode()
	if err != nil {
		return nil, err
	}

	dictionary := gocv.GetPredefinedDictionary(code)
	params := gocv.NewArucoDetectorParameters()
	detector := gocv.NewArucoDetectorWithParams(dictionary, params)
	return &detector, nil
}
