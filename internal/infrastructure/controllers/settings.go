package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rangewriter/config"
)

// loadSettings resolves the configuration for a subcommand: the --config
// flag when given, otherwise the first file in the default locations,
// otherwise the built-in defaults.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return config.Default(), nil
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	return config.Load(cfgPath)
}

func pathArgument(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
