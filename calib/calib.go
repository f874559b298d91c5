// Package calib loads camera calibration coefficients written by OpenCV's
// FileStorage (YAML or JSON) and projects points with them.
package calib

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrCalibration is returned for any calibration file that cannot be used.
var ErrCalibration = errors.New("calibration load failed")

const (
	intrinsicKey  = "K"
	distortionKey = "D"
)

// Coefficients is an immutable intrinsic matrix and distortion vector pair.
type Coefficients struct {
	K [3][3]float64
	d []float64
}

// New builds Coefficients from an intrinsic matrix and distortion vector.
func New(k [3][3]float64, d []float64) (Coefficients, error) {
	if len(d) == 0 {
		return Coefficients{}, fmt.Errorf("%w: empty distortion vector", ErrCalibration)
	}
	dist := make([]float64, len(d))
	copy(dist, d)
	return Coefficients{K: k, d: dist}, nil
}

// Distortion returns a copy of the distortion coefficients.
func (c Coefficients) Distortion() []float64 {
	dist := make([]float64, len(c.d))
	copy(dist, c.d)
	return dist
}

// matrix mirrors an `!!opencv-matrix` entry
type matrix struct {
	Rows int       `yaml:"rows"`
	Cols int       `yaml:"cols"`
	Dt   string    `yaml:"dt"`
	Data []float64 `yaml:"data"`
}

// Load reads the "K" and "D" matrices from the file at path.
func Load(path string) (Coefficients, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Coefficients{}, fmt.Errorf("%w: cannot open camera parameters file: %v", ErrCalibration, err)
	}

	c, err := Parse(data)
	if err != nil {
		return Coefficients{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes FileStorage content. Both entries must be present and well formed.
func Parse(data []byte) (Coefficients, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(stripDirective(data), &doc); err != nil {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrCalibration, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return Coefficients{}, fmt.Errorf("%w: expected a top-level map", ErrCalibration)
	}
	root := doc.Content[0]

	k, err := lookupMatrix(root, intrinsicKey)
	if err != nil {
		return Coefficients{}, err
	}
	if k.Rows != 3 || k.Cols != 3 {
		return Coefficients{}, fmt.Errorf("%w: %q must be 3x3, got %dx%d", ErrCalibration, intrinsicKey, k.Rows, k.Cols)
	}

	d, err := lookupMatrix(root, distortionKey)
	if err != nil {
		return Coefficients{}, err
	}
	if d.Rows != 1 && d.Cols != 1 {
		return Coefficients{}, fmt.Errorf("%w: %q must be a vector, got %dx%d", ErrCalibration, distortionKey, d.Rows, d.Cols)
	}

	var intrinsic [3][3]float64
	for i, v := range k.Data {
		intrinsic[i/3][i%3] = v
	}
	return New(intrinsic, d.Data)
}

func lookupMatrix(root *yaml.Node, key string) (matrix, error) {
	var node *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			node = root.Content[i+1]
			break
		}
	}
	if node == nil {
		return matrix{}, fmt.Errorf("%w: missing %q entry", ErrCalibration, key)
	}
	if node.Kind != yaml.MappingNode {
		return matrix{}, fmt.Errorf("%w: %q is not a matrix", ErrCalibration, key)
	}

	// OpenCV tags the map as !!opencv-matrix
	node.Tag = "!!map"

	var m matrix
	if err := node.Decode(&m); err != nil {
		return matrix{}, fmt.Errorf("%w: %q: %v", ErrCalibration, key, err)
	}
	if m.Rows <= 0 || m.Cols <= 0 || m.Rows*m.Cols != len(m.Data) {
		return matrix{}, fmt.Errorf("%w: %q declares %dx%d but holds %d values", ErrCalibration, key, m.Rows, m.Cols, len(m.Data))
	}
	return m, nil
}

// stripDirective drops the "%YAML:1.0" line OpenCV writes, which is not valid YAML 1.1.
func stripDirective(data []byte) []byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("%YAML")) {
		return data
	}
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		return trimmed[i+1:]
	}
	return nil
}
