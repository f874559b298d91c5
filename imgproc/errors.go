package imgproc

import "errors"

var (
	// ErrUnsupportedDictionary is returned for dictionary names outside the supported set
	ErrUnsupportedDictionary = errors.New("unsupported ArUco dictionary")

	// ErrDevice covers camera open and frame read failures
	ErrDevice = errors.New("camera device error")
)
