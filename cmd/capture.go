package cmd

import (
	"fmt"
	"strconv"

	"github.com/DaniruKun/aruco-cam/archive"
	"github.com/DaniruKun/aruco-cam/imgproc"
	"github.com/DaniruKun/aruco-cam/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCaptureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "capture <directory> <start-index> <prefix>",
		Short: "Interactively capture camera frames to indexed PNG files",
		Long: `Captures one frame to <directory>/<prefix><index>.png, then waits for a
command: 'c' captures the next index, 'e' exits.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, prefix := args[0], args[2]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("start index must be a number, got %q", args[1])
			}

			cmd.SilenceUsage = true
			log, err := newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := utils.EnsureDir(dir); err != nil {
				return err
			}

			grabber := imgproc.DeviceGrabber{Device: viper.GetInt(keyDevice)}

			return archive.New(dir, prefix, index, grabber, cmd.InOrStdin(), cmd.OutOrStdout(), log).Run()
		},
	}
}
