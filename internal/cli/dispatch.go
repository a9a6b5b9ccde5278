package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/dispatcher"
	"github.com/tunekit/trialkeeper/internal/platform"
)

func newDispatchCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Print the dispatcher command line derived from the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := ctx.loadManifest()
			if err != nil {
				return err
			}
			strat, err := platform.Select(manifest.Trial.Platform)
			if err != nil {
				return err
			}
			argv, err := dispatcher.BuildArgs(manifest.Dispatcher, strat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, " "))
			return nil
		},
	}
}
