// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
)

const (
	fsModeWrite    = 0o600
	defaultGenesis = "genesis.json"

	// Commands annotated with [offline] never open the ledger.
	offline = "offline"
)

var (
	handler *cli.Handler

	configFile  string
	dataDir     string
	logLevel    string
	genesisFile string

	rootCmd = &cobra.Command{
		Use:        "countervm-cli",
		Short:      "Counter contract sandbox CLI",
		SuggestFor: []string{"countervm-cli", "countervmcli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		newAddressCmd(),
		newGenesisCmd(),
		newServeCmd(),
		newPrometheusCmd(),
		newScenarioCmd(),
	)
	rootCmd.AddCommand(newActionCmds(&actionEnv{
		handler:     func() *cli.Handler { return handler },
		interactive: true,
		record:      printTransactions,
	})...)
	rootCmd.AddCommand(newQueryCmds()...)

	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a YAML config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&dataDir,
		"data-dir",
		"",
		"directory the ledger is stored in (overrides the config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"log level (overrides the config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		defaultGenesis,
		"genesis file path",
	)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if cmd.Annotations[offline] == "true" || remote(cmd) {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rules, err := loadRules()
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}data dir:{{/}} %s\n", cfg.GetDataDir())
		handler, err = cli.New(cfg, rules)
		return err
	}
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if handler == nil {
			return nil
		}
		return handler.Close()
	}
	rootCmd.SilenceErrors = true
}

// remote reports whether [cmd] queries a running sandbox instead of the
// local one.
func remote(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup(endpointFlag)
	return f != nil && len(f.Value.String()) > 0
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	cfg := config.NewDefault()
	if len(configFile) > 0 {
		var err error
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
	}
	if len(dataDir) > 0 {
		cfg.DataDir = dataDir
	}
	if len(logLevel) > 0 {
		if err := cfg.SetLogLevel(logLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadGenesis returns nil if [genesisFile] does not exist.
func loadGenesis() (*genesis.Genesis, error) {
	b, err := os.ReadFile(genesisFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return genesis.Load(b)
}

func loadRules() (chain.Rules, error) {
	g, err := loadGenesis()
	if err != nil {
		return nil, err
	}
	if g == nil {
		return genesis.NewDefaultRules(), nil
	}
	return g.GetRules(), nil
}
