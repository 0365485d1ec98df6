// Package cli implements the secret-santa command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo describes the binary; main sets it from ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string

	// lookupEnv reads environment overrides (os.LookupEnv outside tests).
	lookupEnv func(string) (string, bool)
}

// NewRootCommand creates the root command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	return newRootCommand(info, os.LookupEnv)
}

func newRootCommand(info BuildInfo, lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &RootOptions{lookupEnv: lookupEnv}

	cmd := &cobra.Command{
		Use:   "secret-santa",
		Short: "Secret santa assignment service",
		Long: `Assigns every member of a group exactly one other member to give a gift to,
never themselves and never the person they had in the previous period.

Run "serve" for the HTTP API, "worker" to process queued requests from NATS,
or "generate" to produce assignments from a local request file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML configuration file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newWorkerCommand(opts))
	cmd.AddCommand(newGenerateCommand(opts))

	return cmd
}
