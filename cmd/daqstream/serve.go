package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/acqlab/daqstream"
	httpAdapter "github.com/acqlab/daqstream/internal/adapters/http"
	"github.com/acqlab/daqstream/internal/adapters/sim"
	"github.com/acqlab/daqstream/internal/logging"
	"github.com/acqlab/daqstream/pkg/config"
	"github.com/acqlab/daqstream/pkg/watchdog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the streaming core against the simulated rig",
	Long: `Starts the streaming-control core over an in-memory simulated acquisition
rig and exposes the command set as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		rig := sim.NewRig(cfg.Clock.FrequencyHz, cfg.Engine.BufferCount, cfg.Engine.BufferSize)

		core, err := daqstream.New(daqstream.Hardware{
			Sampler:  rig.Sampler,
			Engine:   rig.Engine,
			Clock:    rig.Clock,
			Endpoint: rig.Endpoint,
		},
			daqstream.WithLogger(logger),
			daqstream.WithWatchdogConfig(watchdog.Config{
				TickInterval:   cfg.Watchdog.TickInterval,
				StallThreshold: cfg.Watchdog.StallThreshold,
				MaxRecoveries:  cfg.Watchdog.MaxRecoveries,
			}),
		)
		if err != nil {
			fmt.Printf("Error initializing core: %v\n", err)
			os.Exit(1)
		}

		handler, err := httpAdapter.NewHandler(core)
		if err != nil {
			fmt.Printf("Error building control API: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go core.Run(ctx)
		go rig.Produce(ctx, bufferInterval(cfg))

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting daqstream control API on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Stop streaming before the listener goes away; STOP
			// cannot fail.
			core.Stop(ctx)

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
			}
		}
	},
}

// bufferInterval derives the simulated per-buffer completion period from
// the clock rate and buffer geometry.
func bufferInterval(cfg config.Config) time.Duration {
	samplesPerSecond := float64(cfg.Clock.FrequencyHz)
	if samplesPerSecond <= 0 {
		return 100 * time.Millisecond
	}
	interval := time.Duration(float64(cfg.Engine.BufferSize) / samplesPerSecond * float64(time.Second))
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return interval
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
