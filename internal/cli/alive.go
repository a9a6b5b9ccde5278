package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/supervisor"
)

func newAliveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alive <pid>",
		Short: "Check whether a trial process is still running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			alive, err := supervisor.IsAlive(cmd.Context(), pid)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(alive))
			return nil
		},
	}
}

func parsePID(raw string) (int, error) {
	pid, err := strconv.Atoi(raw)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid %q", raw)
	}
	return pid, nil
}
