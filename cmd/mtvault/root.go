package main

import (
	"fmt"
	"os"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagTotalAssets = "total-assets"
	flagTotalShares = "total-shares"
	flagOwner       = "owner"

	envPrefix = "MTVAULT"
)

// NewRootCmd returns the mtvault command tree. Every flag can also be set
// through an MTVAULT_ environment variable or the file given by --config.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "mtvault",
		Short:         "Operator tooling for the multi-token vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfgFile := v.GetString(flagConfig)
			if cfgFile == "" {
				return nil
			}
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", cfgFile, err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "Path to a config file, e.g. /path/to/config.yaml")
	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		ConvertToSharesCmd(v),
		ConvertToAssetsCmd(v),
		PreviewWithdrawCmd(v),
		ValidateGenesisCmd(v),
	)
	return rootCmd
}

// newLogger builds the CLI logger at the configured level.
func newLogger(v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagLogLevel, err)
	}
	return log.NewLogger(os.Stderr, log.LevelOption(level)).With("module", "mtvault-cli"), nil
}
