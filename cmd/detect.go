package cmd

import (
	"errors"
	"strings"

	"github.com/DaniruKun/aruco-cam/imgproc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addDetectionFlags registers the flags shared by detect and pose
func addDetectionFlags(cmd *cobra.Command, width, height int) {
	cmd.Flags().StringP(keyType, "t", imgproc.DefaultDictionary.String(),
		"type of ArUco tag to detect ("+strings.Join(imgproc.SupportedDictionaries(), ", ")+")")
	cmd.Flags().IntP(keyIterations, "i", 1, "Iterations count")
	cmd.Flags().StringP(keyOutput, "o", imgproc.DefaultConfig().OutputPath, "Where the last annotated frame is written")
	cmd.Flags().Int(keyWidth, width, "Requested frame width, 0 keeps the camera default")
	cmd.Flags().Int(keyHeight, height, "Requested frame height, 0 keeps the camera default")
}

// resolveOrSkip resolves the configuration. An unsupported dictionary is
// reported and yields ok=false with a nil error so the command exits cleanly.
func resolveOrSkip(log zerolog.Logger, requireCalibration bool) (cfg imgproc.Config, ok bool, err error) {
	cfg, err = resolveConfig(requireCalibration)
	if errors.Is(err, imgproc.ErrUnsupportedDictionary) {
		log.Info().Str("type", viper.GetString(keyType)).Msg("ArUco tag type is not supported")
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, err
	}
	return cfg, true, nil
}

func newDetectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect and annotate ArUco markers in the camera feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log, err := newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			cfg, ok, err := resolveOrSkip(log, false)
			if !ok {
				return err
			}

			log.Info().Stringer("type", cfg.Dictionary).Msg("detecting tags")

			detector, err := imgproc.NewDetector(cfg.Dictionary)
			if err != nil {
				return err
			}
			defer detector.Close()

			camera, err := imgproc.OpenCamera(cfg.Device, cfg.FrameWidth, cfg.FrameHeight)
			if err != nil {
				return err
			}
			defer camera.Close()

			loop := imgproc.Loop{
				Camera:    camera,
				Detector:  detector,
				Annotator: imgproc.OutlineAnnotator{Log: log},
				Log:       log,
			}
			_, err = loop.Run(cfg.Iterations, cfg.OutputPath)
			return err
		},
	}

	addDetectionFlags(cmd, 0, 0)
	return cmd
}
