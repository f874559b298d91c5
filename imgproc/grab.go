package imgproc

import (
	"fmt"

	"gocv.io/x/gocv"
)

// DeviceGrabber opens the camera for every grab, reads a single frame, stores
// it and releases the camera again.
type DeviceGrabber struct {
	Device int
	Open   func(device int) (Camera, error) // Defaults to OpenCamera
	Write  ImageWriter                      // Defaults to gocv.IMWrite
}

func (g DeviceGrabber) Grab(path string) error {
	open := g.Open
	if open == nil {
		open = func(device int) (Camera, error) {
			return OpenCamera(device, 0, 0)
		}
	}
	write := g.Write
	if write == nil {
		write = gocv.IMWrite
	}

	camera, err := open(g.Device)
	if err != nil {
		return err
	}
	defer camera.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := camera.Read(&frame); !ok || frame.Empty() {
		return fmt.Errorf("%w: cannot capture image from camera %d", ErrDevice, g.Device)
	}
	if ok := write(path, frame); !ok {
		return fmt.Errorf("cannot write %s", path)
	}
	return nil
}
