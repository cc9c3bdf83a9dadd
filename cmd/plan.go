package cmd

import (
	"encoding/json"
	"fmt"

	"nested-models/feature/scenario"

	"github.com/spf13/cobra"
)

var planStep int

// planCmd prints the reconcile plan of one scenario step without applying it.
var planCmd = &cobra.Command{
	Use:   "plan <scenario.yaml>",
	Short: "Show the reconcile plan of a step (dry-run)",
	Long: `Replays the steps before --step, then prints the actions the reconcile
step would take (update, remove, add, skip) without executing them.

Examples:
  plan testdata/library.yaml --step 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		svc := scenario.NewService(env.runtime, env.logger, 1)
		plan, err := svc.Plan(cmd.Context(), sc, planStep)
		if err != nil {
			return fmt.Errorf("failed to plan step %d: %w", planStep, err)
		}

		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	planCmd.Flags().IntVarP(&planStep, "step", "s", 1, "1-based index of the reconcile step")
	RootCmd.AddCommand(planCmd)
}
