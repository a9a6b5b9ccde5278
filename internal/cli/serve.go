package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apihttp "github.com/tunekit/trialkeeper/internal/api/http"
)

var newAPIServer = apihttp.NewServer

func newServeCmd() *cobra.Command {
	var apiAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose trial liveness, termination and metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := newAPIServer(apihttp.Config{Addr: apiAddr, Controller: NewControlAPI()})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Control API listening on %s\n", server.Addr())
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&apiAddr, "api", "127.0.0.1:7791", "Address for the HTTP control API")
	return cmd
}
