// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	protoNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	protoDetailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	protoPartialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List supported TPMS protocols",
	RunE:  runProtocols,
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}

func runProtocols(cmd *cobra.Command, args []string) error {
	for _, name := range registry.Protocols() {
		enc, err := registry.Lookup(name)
		if err != nil {
			return err
		}

		line := protoNameStyle.Render(name)
		line += protoDetailStyle.Render(fmt.Sprintf("  %.2f MHz, %v symbols",
			enc.DefaultFrequency()/1e6, enc.BitDuration()))
		if gaps := enc.Unimplemented(); len(gaps) > 0 {
			line += protoPartialStyle.Render("  (partial)")
			fmt.Println(line)
			for _, gap := range gaps {
				fmt.Println(protoPartialStyle.Render("    - " + gap))
			}
			continue
		}
		fmt.Println(line)
	}
	return nil
}
