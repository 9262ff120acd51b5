// Package configcmd prints the effective configuration.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/hailam/checkersplay/cmd/checkers/internal/base"
	"github.com/hailam/checkersplay/internal/storage"
)

// CmdConfig represents the config command.
var CmdConfig = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after the file and the flags are applied, as YAML. The output can be saved as a configuration file.",
	RunE:  run,
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := base.Flags.Load()
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if path, err := storage.DefaultConfigPath(); err == nil {
		cmd.PrintErrf("# default location: %s\n", path)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
