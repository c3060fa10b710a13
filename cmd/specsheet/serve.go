package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/specsheet/internal/server"
	"github.com/nhdewitt/specsheet/internal/specs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the specification report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			svc, err := specs.New(logger, reg, specs.DefaultSources())
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Addr:         cfg.Server.Listen,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}, logger, svc, reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "Address to listen on")

	return cmd
}
