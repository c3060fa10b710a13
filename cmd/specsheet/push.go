package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/specsheet/internal/agent"
	"github.com/nhdewitt/specsheet/internal/specs"
	"github.com/spf13/cobra"
)

func NewPushCommand() *cobra.Command {
	var url, hostname string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Send the specification report to a collector",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("url") {
				cfg.Push.URL = url
			}
			if cmd.Flags().Changed("hostname") {
				cfg.Push.Hostname = hostname
			}

			svc, err := specs.New(logger, nil, specs.DefaultSources())
			if err != nil {
				return err
			}

			a, err := agent.New(agent.Config{
				URL:        cfg.Push.URL,
				Hostname:   cfg.Push.Hostname,
				Timeout:    cfg.Push.Timeout,
				MaxElapsed: cfg.Push.MaxElapsed,
			}, logger, svc)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := a.Push(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), env.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Collector URL to POST the report to")
	cmd.Flags().StringVar(&hostname, "hostname", "", "Hostname to report (default: os.Hostname)")

	return cmd
}
