// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the image-collector CLI.
// It exports the images embedded in markdown notes of a vault into a
// "<note> images" folder per note.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/image-collector/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the image-collector CLI.
var rootCmd = &cobra.Command{
	Use:   "image-collector",
	Short: "Collect the images embedded in markdown notes",
	Long: `image-collector copies the images a markdown note embeds, either as
![[wikilink]] embeds or as ![alt](path) links, into a folder named
"<note> images" at the root of the vault.

Links are resolved the way the note-taking app does: relative to the note,
then from the vault root, then by the shortest unique path. Every image is
reported on its own; a missing or failed image never stops the rest.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./image-collector.yaml or ~/.config/image-collector/config.yaml)")
	flags.String("vault", ".", "vault root directory")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (default warn)")
	flags.String("log-format", "console", "log format: console or json")

	viper.BindPFlag("vault", flags.Lookup("vault"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))

	viper.SetDefault("history.enabled", true)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("image-collector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "image-collector"))
		}
	}

	viper.SetEnvPrefix("IMAGE_COLLECTOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, environment,
// and the config file.
func loadConfig() types.CollectorConfig {
	return types.CollectorConfig{
		VaultDir:  viper.GetString("vault"),
		Overwrite: viper.GetBool("overwrite"),
		Report:    types.ReportFormat(viper.GetString("report")),
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			DBPath:  viper.GetString("history.db"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
