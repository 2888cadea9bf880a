package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/cell"
	"github.com/AnatoleLucet/cell/telemetry"
)

func metricsCmd() *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Run every scenario and print the collected metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			m := telemetry.NewMetrics(
				telemetry.WithRegistry(reg),
				telemetry.WithNamespace(namespace),
			)

			for _, name := range scenarioNames() {
				if err := runScoped(cmd.OutOrStdout(), scenarios[name], cell.WithInstrument(m)); err != nil {
					return fmt.Errorf("scenario %s: %w", name, err)
				}
			}

			families, err := reg.Gather()
			if err != nil {
				return fmt.Errorf("gather metrics: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, f := range families {
				for _, metric := range f.GetMetric() {
					switch {
					case metric.GetCounter() != nil:
						fmt.Fprintf(out, "%s %g\n", f.GetName(), metric.GetCounter().GetValue())
					case metric.GetHistogram() != nil:
						fmt.Fprintf(out, "%s_count %d\n", f.GetName(), metric.GetHistogram().GetSampleCount())
					}
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "cell", "Metrics namespace")

	return cmd
}
