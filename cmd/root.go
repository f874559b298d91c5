/*
Copyright © 2022 Daniils Petrovs <thedanpetrov@gmail.com>

*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DaniruKun/aruco-cam/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "ARUCO"

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "aruco-cam",
		Short: "ArUco camera tools",
		Long: `Camera tools built around OpenCV's ArUco detector: detect and annotate
markers, estimate their pose from a calibrated camera, and capture frames for
calibration datasets.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, cfgFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().Int("device", 0, "Camera device index")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", logging.FormatConsole, "Log format: console or json")

	rootCmd.AddCommand(newDetectCommand(), newPoseCommand(), newCaptureCommand())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// initConfig binds the running command's flags, environment variables and an
// optional config file into viper.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	viper.Reset()
	registerDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func newLogger(w io.Writer) (zerolog.Logger, error) {
	return logging.New(w, viper.GetString("log-level"), viper.GetString("log-format"))
}
