package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"nested-models/feature/scenario"
	"nested-models/feature/scenario/models"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	replayWorkers int
	replayFormat  string
	replayMetrics bool
)

// replayCmd replays scenario files.
var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>...",
	Short: "Replay scenario files and report events and final state",
	Long: `Replays each scenario on its own model graph, concurrently.

Examples:
  # Summary per scenario
  replay testdata/library.yaml

  # Full results as JSON, plus the model counters
  replay --format json --metrics a.yaml b.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		svc := scenario.NewService(env.runtime, env.logger, replayWorkers)
		results, err := svc.ReplayFiles(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("replay failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if err := writeResults(out, replayFormat, results); err != nil {
			return err
		}

		if replayMetrics {
			if env.registry == nil {
				env.logger.Warn("metrics requested but disabled; set METRICS_ENABLED=true")
			} else {
				families, err := env.registry.Gather()
				if err != nil {
					return fmt.Errorf("failed to gather metrics: %w", err)
				}
				if err := writeMetrics(out, families); err != nil {
					return err
				}
			}
		}

		env.logger.Info("Replay completed",
			zap.Int("scenarios", len(results)),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

func writeResults(w io.Writer, format string, results []*models.Result) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case "text", "":
		for _, r := range results {
			fmt.Fprintf(w, "\n=== Scenario %s ===\n", r.Name)
			fmt.Fprintf(w, "Events: %d\n", len(r.Events))
			fmt.Fprintf(w, "Aggregate changes: %d\n", r.Count("change"))
			fmt.Fprintf(w, "Rejected steps: %d\n", len(r.Rejected))
			fmt.Fprintf(w, "Top-level attributes: %d\n", len(r.Snapshot))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (text, json, yaml)", format)
	}
}

func writeMetrics(w io.Writer, families []*dto.MetricFamily) error {
	fmt.Fprintln(w, "\n=== Metrics ===")
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	return nil
}

func init() {
	replayCmd.Flags().IntVarP(&replayWorkers, "workers", "w", 4, "Scenarios replayed concurrently")
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", "text", "Output format: text, json or yaml")
	replayCmd.Flags().BoolVar(&replayMetrics, "metrics", false, "Print the model counters after replaying")
	RootCmd.AddCommand(replayCmd)
}
