package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultResultPath is where the detector commands write their last annotated frame
const DefaultResultPath = "filename-result.jpg"

// CaptureFilename returns the archived frame name for a prefix and index, e.g. img3.png
func CaptureFilename(prefix string, index int) string {
	return prefix + strconv.Itoa(index) + ".png"
}

// CapturePath joins the output directory with CaptureFilename
func CapturePath(dir, prefix string, index int) string {
	return filepath.Join(dir, CaptureFilename(prefix, index))
}

// EnsureDir returns an error unless dir exists and is a directory
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("not a directory: " + dir)
	}
	return nil
}
