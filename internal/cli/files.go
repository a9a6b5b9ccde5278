package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/metrics"
	"github.com/tunekit/trialkeeper/internal/prober"
)

func newFilesCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "files <dir>",
		Short: "Count regular files under a trial directory with a bounded probe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prober.New()
			if timeout > 0 {
				p.Timeout = timeout
			}
			start := time.Now()
			count, err := p.CountFiles(cmd.Context(), args[0])
			metrics.ObserveProbeDuration(time.Since(start))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", prober.DefaultTimeout, "Deadline for the enumeration command")
	return cmd
}
