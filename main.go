// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar
//
// tpms-tools - Tire Pressure Monitoring System transmit toolkit
//
// A CLI tool for encoding TPMS sensor readings into protocol frames,
// generating FSK waveforms, and fuzzing protocol encoders.

package main

import (
	"os"

	"github.com/yagoliz/tpms-tools/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
