package cmd

import (
	"github.com/DaniruKun/aruco-cam/calib"
	"github.com/DaniruKun/aruco-cam/imgproc"
	"github.com/spf13/cobra"
)

func newPoseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pose",
		Short: "Detect ArUco markers and estimate their pose with a calibrated camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			log, err := newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			cfg, ok, err := resolveOrSkip(log, true)
			if !ok {
				return err
			}

			log.Info().Stringer("type", cfg.Dictionary).Msg("detecting tags")

			detector, err := imgproc.NewDetector(cfg.Dictionary)
			if err != nil {
				return err
			}
			defer detector.Close()

			coefficients, err := calib.Load(cfg.CalibrationPath)
			if err != nil {
				return err
			}
			log.Debug().
				Interface("K", coefficients.K).
				Floats64("D", coefficients.Distortion()).
				Msg("camera parameters loaded")

			estimator := imgproc.NewSolvePnPEstimator(coefficients, cfg.MarkerLength)
			defer estimator.Close()

			camera, err := imgproc.OpenCamera(cfg.Device, cfg.FrameWidth, cfg.FrameHeight)
			if err != nil {
				return err
			}
			defer camera.Close()

			loop := imgproc.Loop{
				Camera:   camera,
				Detector: detector,
				Annotator: imgproc.PoseAnnotator{
					Calibration: coefficients,
					Estimator:   estimator,
					AxisLength:  cfg.AxisLength,
					Log:         log,
				},
				Log: log,
			}
			_, err = loop.Run(cfg.Iterations, cfg.OutputPath)
			return err
		},
	}

	addDetectionFlags(cmd, 640, 480)
	cmd.Flags().StringP(keyCameraParams, "c", "", "Camera parameters file (required; also ARUCO_CAMERA_PARAMS_FILE or config)")
	cmd.Flags().Float64(keyMarkerLength, imgproc.DefaultMarkerLength, "Marker side length")
	cmd.Flags().Float64(keyAxisLength, imgproc.DefaultAxisLength, "Length of the drawn pose axes")
	return cmd
}
