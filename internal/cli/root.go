package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/config"
	"github.com/tunekit/trialkeeper/internal/netutil"
)

func NewRootCmd() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *context) {
	var manifestFile string

	root := &cobra.Command{
		Use:   "trialkeeper",
		Short: "Launch and supervise tuning trial processes",
	}

	root.PersistentFlags().
		StringVarP(&manifestFile, "file", "f", "trial.yaml", "Path to trial manifest")

	ctx := &context{manifestFile: &manifestFile}
	root.AddCommand(newLaunchCmd(ctx))
	root.AddCommand(newAliveCmd())
	root.AddCommand(newKillCmd())
	root.AddCommand(newFilesCmd())
	root.AddCommand(newDispatchCmd(ctx))
	root.AddCommand(newServeCmd())

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root, ctx
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type context struct {
	manifestFile *string

	hostIP string
}

func (c *context) loadManifest() (*config.Manifest, error) {
	return config.Load(*c.manifestFile)
}

// resolveHostIP computes the advertised host address once and reuses the
// value for the rest of the invocation.
func (c *context) resolveHostIP() (string, error) {
	if c.hostIP != "" {
		return c.hostIP, nil
	}
	ip, err := netutil.ResolveHostIP()
	if err != nil {
		return "", err
	}
	c.hostIP = ip
	return ip, nil
}
