package main

import (
	"fmt"
	"strings"

	"github.com/acqlab/daqstream"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daqstream",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daqstream version %s\n", strings.TrimSpace(daqstream.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
