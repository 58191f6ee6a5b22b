package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string
var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stylus",
		Short:   "Deterministic in-silico evolution of genomes encoding Han glyph stroke geometry",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.stylus.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (development) logging")
	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newConfigCmd())
	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".stylus")
			viper.SetConfigType("yaml")
		}
	}
	viper.SetEnvPrefix("STYLUS")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
