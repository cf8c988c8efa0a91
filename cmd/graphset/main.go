// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the graphset CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the graphset CLI.
var rootCmd = &cobra.Command{
	Use:   "graphset",
	Short: "Fetch and prepare entity-item graph datasets",
	Long: `graphset downloads public entity-item graph datasets (MovieLens,
BeerAdvocate and friends), converts the raw ratings into .dat edge lists,
and keeps a catalog of what has been fetched.

Each fetch is a linear run: download the archive, extract it, convert the
extracted files, publish <name>.dat plus a metadata sidecar into the
datasets directory, and remove every intermediate. A failed run publishes
nothing.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./graphset.yaml or ~/.config/graphset/config.yaml)")
	rootCmd.PersistentFlags().String("datasets-dir", "", "directory for derived .dat outputs (default \"datasets\")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("graphset")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "graphset"))
		}
	}

	viper.SetDefault("datasets_dir", "datasets")
	viper.SetDefault("manifest", "datasets.yaml")
	viper.SetDefault("catalog.enabled", true)

	viper.SetEnvPrefix("GRAPHSET")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// datasetsDir resolves the datasets directory: flag first, then config.
func datasetsDir() string {
	if dir, _ := rootCmd.PersistentFlags().GetString("datasets-dir"); dir != "" {
		return dir
	}
	return viper.GetString("datasets_dir")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
