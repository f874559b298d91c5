package imgproc

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Dictionary is the closed set of ArUco dictionaries the detector accepts
type Dictionary int

const (
	DictUnsupported Dictionary = iota
	Dict4x4_100
	Dict5x5_100
	Dict5x5_1000
)

// DefaultDictionary is used when no --type is given
const DefaultDictionary = Dict4x4_100

var supportedDictionaries = []Dictionary{Dict4x4_100, Dict5x5_100, Dict5x5_1000}

// Parses the OpenCV style name (e.g. `DICT_4X4_100`). Unknown names yield
// DictUnsupported and an error wrapping ErrUnsupportedDictionary.
func ParseDictionary(name string) (Dictionary, error) {
	for _, d := range supportedDictionaries {
		if d.String() == name {
			return d, nil
		}
	}
	return DictUnsupported, fmt.Errorf("%w: %q", ErrUnsupportedDictionary, name)
}

// Names of every supported dictionary, in declaration order
func SupportedDictionaries() []string {
	names := make([]string, 0, len(supportedDictionaries))
	for _, d := range supportedDictionaries {
		names = append(names, d.String())
	}
	return names
}

func (d Dictionary) String() string {
	switch d {
	case Dict4x4_100:
		return "DICT_4X4_100"
	case Dict5x5_100:
		return "DICT_5X5_100"
	case Dict5x5_1000:
		return "DICT_5X5_1000"
	default:
		return "unsupported"
	}
}

// ArucoCode maps the dictionary to its gocv predefined dictionary code
func (d Dictionary) ArucoCode() (gocv.ArucoDictionaryCode, error) {
	switch d {
	case Dict4x4_100:
		return gocv.ArucoDict4x4_100, nil
	case Dict5x5_100:
		return gocv.ArucoDict5x5_100, nil
	case Dict5x5_1000:
		return gocv.ArucoDict5x5_1000, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDictionary, d)
	}
}
