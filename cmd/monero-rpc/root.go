package main

import (
	"encoding/json"
	"io"

	"github.com/ivanzzeth/monero-jsonrpc-client/core"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	envFile    string
	logLevel   string

	cfg *core.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "monero-rpc",
		Short:         "Call monerod and monero-wallet-rpc from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (json, yaml or toml); env only when empty")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.StringVar(&a.logLevel, "log-level", "", "overrides the configured log level")

	root.AddCommand(
		a.callCmd(),
		a.directCmd(),
		a.blockCountCmd(),
		a.blockHeaderCmd(),
		a.balanceCmd(),
		a.healthCmd(),
	)

	return root
}

func (a *app) load() error {
	if err := godotenv.Load(a.envFile); err != nil {
		logrus.Debugf("%s not loaded: %v", a.envFile, err)
	}

	cfg, err := core.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		if _, err := logrus.ParseLevel(a.logLevel); err != nil {
			return &core.ConfigError{Field: "logLevel", Err: err}
		}
		cfg.LogLevel = a.logLevel
	}

	cfg.ApplyLogLevel()
	a.cfg = cfg

	return nil
}

func (a *app) daemon() (*core.Client, error) {
	return core.NewClient(a.cfg.Daemon)
}

func (a *app) wallet() (*core.Client, error) {
	return core.NewClient(a.cfg.Wallet)
}

func printJSON(w io.Writer, v any) error {
	bts, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}

	bts = append(bts, '\n')
	_, err = w.Write(bts)
	return err
}
