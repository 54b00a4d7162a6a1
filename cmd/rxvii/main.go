package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rxvii/internal/loader"
	"rxvii/internal/vm"
)

func main() {
	var debug bool
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "rxvii",
		Short: "RISKXVII — a small 32-bit RISC-style instruction set emulator",
	}

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a flat instruction+data image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			logrus.SetLevel(level)
			logrus.SetOutput(os.Stderr)

			instMem, dataMem, err := loader.Load(args[0])
			if err != nil {
				logrus.WithError(err).Error("failed to load image")
				os.Exit(1)
			}

			core, err := vm.NewVM(instMem, dataMem, os.Stdout, os.Stdin)
			if err != nil {
				logrus.WithError(err).Error("failed to construct VM")
				os.Exit(1)
			}

			var result vm.RunResult
			if debug {
				result = core.RunDebug(func(pc uint32, d vm.Decoded) {
					logrus.WithFields(logrus.Fields{
						"pc": fmt.Sprintf("0x%08x", pc),
						"op": d.Op.String(),
					}).Info("step")
				})
			} else {
				result = core.Run()
			}

			logrus.WithFields(logrus.Fields{
				"halted":    result.Halted,
				"final_pc":  fmt.Sprintf("0x%08x", result.FinalPC),
				"exit_code": result.ExitCode,
			}).Debug("run finished")

			os.Exit(result.ExitCode)
			return nil
		},
	}
	runCmd.Flags().BoolVar(&debug, "debug", false, "single-step and log each instruction to stderr")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
