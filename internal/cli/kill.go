package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/metrics"
	"github.com/tunekit/trialkeeper/internal/supervisor"
)

func newKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <pid>",
		Short: "Terminate a trial process (no-op if already gone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			if err := supervisor.Kill(cmd.Context(), pid); err != nil {
				return err
			}
			metrics.ObserveKill()
			fmt.Fprintf(cmd.OutOrStdout(), "signalled %d\n", pid)
			return nil
		},
	}
}
