package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daqstream",
	Short: "daqstream is the streaming-control daemon for the acquisition device",
	Long: `daqstream runs the streaming-control core: one session at a time between
the hardware sampler and the USB bulk endpoint, with a background watchdog
performing bounded stall recovery.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML device configuration")
}
