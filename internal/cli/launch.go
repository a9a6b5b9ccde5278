package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tunekit/trialkeeper/internal/cliutil"
	"github.com/tunekit/trialkeeper/internal/ident"
	"github.com/tunekit/trialkeeper/internal/launcher"
	"github.com/tunekit/trialkeeper/internal/metrics"
	"github.com/tunekit/trialkeeper/internal/platform"
)

const trialIDLength = 8

func newLaunchCmd(ctx *context) *cobra.Command {
	var extraEnv []string

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Materialize and start the trial described by the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := ctx.loadManifest()
			if err != nil {
				return err
			}
			trial, err := manifest.LaunchSpec(func() (string, error) {
				return ident.Generate(trialIDLength)
			})
			if err != nil {
				return err
			}

			env := append([]platform.EnvVar(nil), trial.Env...)
			for _, raw := range extraEnv {
				ev, err := parseEnvFlag(raw)
				if err != nil {
					return err
				}
				env = append(env, ev)
			}
			if ip, err := ctx.resolveHostIP(); err == nil {
				env = append(env, platform.EnvVar{Key: "TRIALKEEPER_HOST_IP", Value: ip})
			}

			artifacts, pid, err := launcher.Launch(cmd.Context(), launcher.Spec{
				WorkingDirectory: trial.Workdir,
				Command:          trial.Command,
				Env:              env,
				Platform:         trial.Platform,
			})
			if err != nil {
				return err
			}
			metrics.ObserveLaunch(string(trial.Platform))

			enc := json.NewEncoder(cmd.OutOrStdout())
			cliutil.EncodeLogEvent(enc, cmd.ErrOrStderr(), cliutil.TrialEvent{
				Timestamp: time.Now(),
				Trial:     filepath.Base(trial.Workdir),
				PID:       pid,
				Message:   cliutil.RedactSecrets(fmt.Sprintf("trial launched: %s", trial.Command)),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "pid=%d state=%s\n", pid, artifacts.StatePath)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&extraEnv, "env", "e", nil, "Additional KEY=VALUE environment override (repeatable)")
	return cmd
}

func parseEnvFlag(raw string) (platform.EnvVar, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '=' {
			if i == 0 {
				break
			}
			return platform.EnvVar{Key: raw[:i], Value: raw[i+1:]}, nil
		}
	}
	return platform.EnvVar{}, fmt.Errorf("invalid env override %q, want KEY=VALUE", raw)
}
