// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yagoliz/tpms-tools/internal/logging"
	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

var (
	logLevel string

	// registry holds every supported protocol. Populated explicitly once,
	// before any command runs.
	registry *tpms.Registry
)

var rootCmd = &cobra.Command{
	Use:   "tpms-tools",
	Short: "TPMS signal encoder and fuzzer",
	Long: `tpms-tools - Encode tire pressure sensor telemetry into manufacturer
TPMS wire formats and FSK waveforms.

Supported protocols are listed by "tpms-tools protocols". Sensor values are
given per protocol: pressure is kPa for renault and mazda, PSI for toyota.

Typical use:
  tpms-tools wave renault --sensor-id 0x123456 --pressure 220 --temperature 25
  tpms-tools fuzz renault --seed 42 --strategy boundary
  tpms-tools transmit renault --url ws://bridge:8073/tx --sensor-id 0x123456 \
      --pressure 220 --temperature 25

Verbosity is controlled with --log-level or the TPMS_LOG_LEVEL environment
variable; output is silent by default.`,
	Version: "1.2.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity (debug, info, warn, error)")
	registry = tpms.NewDefaultRegistry()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
