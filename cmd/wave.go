// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yagoliz/tpms-tools/internal/config"
	"github.com/yagoliz/tpms-tools/internal/logging"
	"github.com/yagoliz/tpms-tools/pkg/modem"
	"github.com/yagoliz/tpms-tools/pkg/tpms"
)

// modFlags is the modulation flag set shared by the wave and transmit
// commands. Zero values mean "use the config file default".
type modFlags struct {
	sampleRate int
	deviation  float64
	carrier    float64
	amplitude  float64
	padding    float64
}

func (f *modFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.sampleRate, "samplerate", 0, "Sample rate in Hz")
	cmd.Flags().Float64Var(&f.deviation, "deviation", 0, "Frequency deviation in Hz")
	cmd.Flags().Float64Var(&f.carrier, "carrier", 0, "Baseband carrier offset in Hz")
	cmd.Flags().Float64Var(&f.amplitude, "amplitude", 0, "Amplitude as a fraction of full scale")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "Trailing silence in seconds")
}

var (
	waveSensor   sensorFlags
	waveMod      modFlags
	waveFilename string
)

var waveCmd = &cobra.Command{
	Use:   "wave <protocol>",
	Short: "Encode a reading and write the FSK waveform to a WAV file",
	Long: `Encode a sensor reading, modulate it as continuous-phase FSK, and write
the result to a mono 16-bit PCM WAV file.

Modulation defaults come from the config file when present; flags override.

Exit codes:
  0 - Waveform written
  1 - Validation failure, unknown protocol, or bad modulation config`,
	Args: cobra.ExactArgs(1),
	RunE: runWave,
}

func init() {
	rootCmd.AddCommand(waveCmd)
	waveSensor.register(waveCmd)
	waveMod.register(waveCmd)
	waveCmd.Flags().StringVar(&waveFilename, "filename", "fsk_signal.wav", "Output filename")
}

// modulationConfig merges config-file defaults with command flags and the
// encoder's symbol timing.
func modulationConfig(encoder tpms.Encoder, f modFlags) (modem.Config, float64, error) {
	fileCfg, err := config.Load()
	if err != nil {
		return modem.Config{}, 0, err
	}

	cfg := modem.Config{
		SampleRate: fileCfg.Modulation.SampleRate,
		Carrier:    fileCfg.Modulation.Carrier,
		Deviation:  fileCfg.Modulation.Deviation,
		Amplitude:  fileCfg.Modulation.Amplitude,
	}
	padding := fileCfg.Modulation.Padding

	if f.sampleRate > 0 {
		cfg.SampleRate = f.sampleRate
	}
	if f.deviation > 0 {
		cfg.Deviation = f.deviation
	}
	if f.carrier != 0 {
		cfg.Carrier = f.carrier
	}
	if f.amplitude > 0 {
		cfg.Amplitude = f.amplitude
	}
	if f.padding > 0 {
		padding = f.padding
	}

	// Symbol timing follows the protocol's nominal bit duration.
	cfg, err = cfg.ForSymbolDuration(encoder.BitDuration())
	if err != nil {
		return modem.Config{}, 0, err
	}
	return cfg, padding, nil
}

func runWave(cmd *cobra.Command, args []string) error {
	encoder, err := lookupEncoder(args[0])
	if err != nil {
		return err
	}
	reading, err := waveSensor.reading()
	if err != nil {
		return err
	}

	message, err := encoder.Message(reading)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}

	cfg, padding, err := modulationConfig(encoder, waveMod)
	if err != nil {
		return err
	}
	waveform, err := modem.Modulate(message, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modulation failed: %v\n", err)
		os.Exit(1)
	}
	waveform = waveform.Pad(padding)

	if err := modem.WriteWAVFile(waveFilename, waveform); err != nil {
		return err
	}

	logging.Info("waveform written",
		zap.String("protocol", encoder.Name()),
		zap.String("file", waveFilename),
		zap.Int("samples", len(waveform.Samples)),
		zap.Int("samplerate", waveform.SampleRate),
	)
	fmt.Printf("Wrote %s: %d samples @ %d Hz (%.1f ms)\n",
		waveFilename, len(waveform.Samples), waveform.SampleRate, waveform.Duration()*1000)
	return nil
}
