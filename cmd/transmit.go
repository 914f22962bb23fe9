// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yagoliz/tpms-tools/internal/logging"
	"github.com/yagoliz/tpms-tools/pkg/modem"
)

var (
	transmitSensor sensorFlags
	transmitMod    modFlags

	transmitPort     string
	transmitBaudRate int
	transmitURL      string
	transmitUser     string
	transmitSkipSSL  bool
	transmitRepeat   int
	transmitGap      float64
)

var transmitCmd = &cobra.Command{
	Use:   "transmit <protocol>",
	Short: "Encode a reading and stream the FSK samples to a transmitter",
	Long: `Encode a sensor reading, modulate it as continuous-phase FSK, and stream
the samples (16-bit little-endian PCM) to a serial-attached RF dongle or a
WebSocket SDR bridge.

Exactly one of --port or --url must be given. For wss:// bridges the Basic
auth password is read from TPMS_BRIDGE_PASSWORD or prompted interactively.

Exit codes:
  0 - Burst(s) transmitted
  1 - Validation failure, connection failure, or bad modulation config`,
	Args: cobra.ExactArgs(1),
	RunE: runTransmit,
}

func init() {
	rootCmd.AddCommand(transmitCmd)
	transmitSensor.register(transmitCmd)
	transmitMod.register(transmitCmd)
	transmitCmd.Flags().StringVarP(&transmitPort, "port", "p", "", "Serial port (e.g. /dev/ttyUSB0)")
	transmitCmd.Flags().IntVarP(&transmitBaudRate, "baudrate", "b", 921600, "Serial baud rate")
	transmitCmd.Flags().StringVarP(&transmitURL, "url", "u", "", "WebSocket bridge URL (ws:// or wss://)")
	transmitCmd.Flags().StringVar(&transmitUser, "username", "admin", "Username for WebSocket Basic auth")
	transmitCmd.Flags().BoolVar(&transmitSkipSSL, "skip-ssl-verify", false, "Skip TLS certificate verification (testing only)")
	transmitCmd.Flags().IntVarP(&transmitRepeat, "repeat", "r", 1, "Number of bursts to transmit")
	transmitCmd.Flags().Float64Var(&transmitGap, "gap", 0.1, "Inter-burst gap in seconds")
}

func openTransmitConnection() (Connection, error) {
	switch {
	case transmitPort != "" && transmitURL != "":
		return nil, fmt.Errorf("--port and --url are mutually exclusive")
	case transmitPort != "":
		return OpenSerialConnection(transmitPort, transmitBaudRate)
	case transmitURL != "":
		password, err := GetPassword()
		if err != nil {
			return nil, err
		}
		return OpenWebSocketConnection(transmitURL, transmitUser, password, transmitSkipSSL)
	default:
		return nil, fmt.Errorf("one of --port or --url is required")
	}
}

func runTransmit(cmd *cobra.Command, args []string) error {
	if transmitRepeat < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}

	encoder, err := lookupEncoder(args[0])
	if err != nil {
		return err
	}
	reading, err := transmitSensor.reading()
	if err != nil {
		return err
	}

	message, err := encoder.Message(reading)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}

	cfg, padding, err := modulationConfig(encoder, transmitMod)
	if err != nil {
		return err
	}
	waveform, err := modem.Modulate(message, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modulation failed: %v\n", err)
		os.Exit(1)
	}
	waveform = waveform.Repeat(transmitRepeat, transmitGap).Pad(padding)

	conn, err := openTransmitConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	start := time.Now()
	pcm := modem.SamplesLE16(waveform)
	if _, err := conn.Write(pcm); err != nil {
		return fmt.Errorf("transmit failed: %v", err)
	}

	logging.Info("burst transmitted",
		zap.String("protocol", encoder.Name()),
		zap.Int("bursts", transmitRepeat),
		zap.Int("samples", len(waveform.Samples)),
		zap.Int("bytes", len(pcm)),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Printf("Transmitted %d burst(s): %d samples @ %d Hz (%.1f ms on air)\n",
		transmitRepeat, len(waveform.Samples), waveform.SampleRate, waveform.Duration()*1000)
	return nil
}
