package cmd

import (
	"fmt"

	"nested-models/feature/scenario"

	"github.com/spf13/cobra"
)

// checkCmd validates scenario files without replaying them.
var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml>...",
	Short: "Validate scenario files without replaying them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			sc, err := scenario.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n%v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d types, %d steps)\n", path, len(sc.Types), len(sc.Steps))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
