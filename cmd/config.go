package cmd

import (
	"errors"
	"fmt"

	"github.com/DaniruKun/aruco-cam/imgproc"
	"github.com/DaniruKun/aruco-cam/logging"
	"github.com/DaniruKun/aruco-cam/utils"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config keys, shared by flags, ARUCO_* environment variables and config files
const (
	keyType         = "type"
	keyIterations   = "iterations"
	keyCameraParams = "camera_params_file"
	keyDevice       = "device"
	keyOutput       = "output"
	keyWidth        = "width"
	keyHeight       = "height"
	keyMarkerLength = "marker_length"
	keyAxisLength   = "axis_length"
)

func registerDefaults() {
	viper.SetDefault(keyType, imgproc.DefaultDictionary.String())
	viper.SetDefault(keyIterations, 1)
	viper.SetDefault(keyDevice, 0)
	viper.SetDefault(keyOutput, utils.DefaultResultPath)
	viper.SetDefault(keyMarkerLength, imgproc.DefaultMarkerLength)
	viper.SetDefault(keyAxisLength, imgproc.DefaultAxisLength)
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", logging.FormatConsole)
}

// resolveConfig builds the capture loop configuration from viper. The
// dictionary is checked first so an unsupported name does no other work.
func resolveConfig(requireCalibration bool) (imgproc.Config, error) {
	cfg := imgproc.DefaultConfig()

	dict, err := imgproc.ParseDictionary(viper.GetString(keyType))
	if err != nil {
		return cfg, err
	}
	cfg.Dictionary = dict

	if cfg.Iterations, err = cast.ToIntE(viper.Get(keyIterations)); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", keyIterations, err)
	}
	if cfg.Device, err = cast.ToIntE(viper.Get(keyDevice)); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", keyDevice, err)
	}
	if cfg.MarkerLength, err = cast.ToFloat64E(viper.Get(keyMarkerLength)); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", keyMarkerLength, err)
	}
	if cfg.AxisLength, err = cast.ToFloat64E(viper.Get(keyAxisLength)); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", keyAxisLength, err)
	}
	cfg.FrameWidth = viper.GetInt(keyWidth)
	cfg.FrameHeight = viper.GetInt(keyHeight)
	cfg.OutputPath = viper.GetString(keyOutput)
	cfg.CalibrationPath = viper.GetString(keyCameraParams)

	if requireCalibration && cfg.CalibrationPath == "" {
		return cfg, errors.New("a camera parameters file is required (--camera_params_file)")
	}

	return cfg, cfg.Validate()
}
