// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yagoliz/tpms-tools/internal/config"
	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// sensorFlags is the common sensor reading flag set shared by the encode,
// wave, transmit and fuzz commands.
type sensorFlags struct {
	sensorID    string
	pressure    float64
	temperature int
	flags       int
	extra       int
	preset      string
}

// register adds the reading flags to a command.
func (f *sensorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sensorID, "sensor-id", "", "Sensor ID (hex with 0x prefix, or decimal)")
	cmd.Flags().Float64Var(&f.pressure, "pressure", 0, "Tire pressure (kPa, or PSI for toyota)")
	cmd.Flags().IntVar(&f.temperature, "temperature", 0, "Temperature in Celsius")
	cmd.Flags().IntVar(&f.flags, "flags", -1, "Protocol flags field (default: protocol-specific)")
	cmd.Flags().IntVar(&f.extra, "extra", -1, "Protocol extra field (default: protocol-specific)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Named sensor preset from the config file")
}

// reading resolves the flags (or a config preset) into a sensor reading.
func (f *sensorFlags) reading() (tpms.SensorReading, error) {
	if f.preset != "" {
		cfg, err := config.Load()
		if err != nil {
			return tpms.SensorReading{}, err
		}
		p, ok := cfg.Sensors[f.preset]
		if !ok {
			return tpms.SensorReading{}, fmt.Errorf("unknown sensor preset %q", f.preset)
		}
		return tpms.NewSensorReading(p.SensorID, p.Pressure, p.Temperature), nil
	}

	if f.sensorID == "" {
		return tpms.SensorReading{}, fmt.Errorf("either --sensor-id or --preset is required")
	}
	id, err := strconv.ParseUint(f.sensorID, 0, 32)
	if err != nil {
		return tpms.SensorReading{}, fmt.Errorf("invalid sensor ID %q: %v", f.sensorID, err)
	}

	r := tpms.NewSensorReading(uint32(id), f.pressure, f.temperature)
	if f.flags >= 0 {
		r = r.WithFlags(f.flags)
	}
	if f.extra >= 0 {
		r = r.WithExtra(f.extra)
	}
	return r, nil
}

// lookupEncoder resolves the protocol argument, warning about partial
// protocol support.
func lookupEncoder(name string) (tpms.Encoder, error) {
	enc, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	for _, gap := range enc.Unimplemented() {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", enc.Name(), gap)
	}
	return enc, nil
}
