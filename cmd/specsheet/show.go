package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nhdewitt/specsheet/internal/protocol"
	"github.com/nhdewitt/specsheet/internal/specs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func NewShowCommand() *cobra.Command {
	var (
		format string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the specification report",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := specs.New(logger, nil, specs.DefaultSources())
			if err != nil {
				return err
			}

			report := svc.ComputerSpecs(cmd.Context())
			return render(cmd.OutOrStdout(), report, format, pretty)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml, text)")
	cmd.Flags().BoolVar(&pretty, "pretty", term.IsTerminal(int(os.Stdout.Fd())), "Indent JSON output")

	return cmd
}

func render(w io.Writer, report protocol.SystemReport, format string, pretty bool) error {
	report = report.Normalize()

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return nil

	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return enc.Close()

	case "text":
		return renderText(w, report)

	default:
		return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
	}
}

func renderText(w io.Writer, r protocol.SystemReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	gpus := "None"
	if len(r.GPU) > 0 {
		gpus = strings.Join(r.GPU, "\n\t")
	}

	rows := [][2]string{
		{"OS", r.OS},
		{"CPU", r.CPU},
		{"RAM", r.RAM},
		{"Storage", fmt.Sprintf("%s / %s", r.StorageUsed, r.StorageTotal)},
		{"GPU", gpus},
		{"DirectX", r.DirectX},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}

	return tw.Flush()
}
