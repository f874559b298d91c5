package imgproc

import (
	"errors"

	"github.com/DaniruKun/aruco-cam/utils"
)

const (
	DefaultMarkerLength = 24.3 // Physical marker side, same unit as the translation vectors
	DefaultAxisLength   = 25
)

type Config struct {
	Dictionary      Dictionary // ArUco dictionary to detect
	Iterations      int        // Number of capture passes, 0 performs none
	Device          int        // Camera device index
	FrameWidth      int        // Requested frame width, 0 keeps the device default
	FrameHeight     int        // Requested frame height, 0 keeps the device default
	CalibrationPath string     // Camera parameters file, required for pose estimation
	MarkerLength    float64    // Marker side length used for pose estimation
	AxisLength      float64    // Length of the drawn pose axes
	OutputPath      string     // Where the last annotated frame is written
}

func DefaultConfig() Config {
	return Config{
		Dictionary:   DefaultDictionary,
		Iterations:   1,
		MarkerLength: DefaultMarkerLength,
		AxisLength:   DefaultAxisLength,
		OutputPath:   utils.DefaultResultPath,
	}
}

// Validate checks the values the capture loop relies on
func (c Config) Validate() error {
	if _, err := c.Dictionary.ArucoCode(); err != nil {
		return err
	}
	if c.Iterations < 0 {
		return errors.New("iterations must not be negative")
	}
	if c.Device < 0 {
		return errors.New("device index must not be negative")
	}
	if c.FrameWidth < 0 || c.FrameHeight < 0 {
		return errors.New("frame size must not be negative")
	}
	if c.MarkerLength <= 0 {
		return errors.New("marker length must be positive")
	}
	if c.AxisLength <= 0 {
		return errors.New("axis length must be positive")
	}
	if c.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	return nil
}
