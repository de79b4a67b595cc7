package main

import (
	"fmt"
	"os"

	"github.com/MrDiipo/pagerank/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var rootCmd = &cobra.Command{
	Use:           "pagerank",
	Short:         "Rank a corpus of HTML pages",
	Long:          "pagerank estimates the PageRank of every page in a directory of HTML files, both by sampling a random surfer and by iterating the PageRank equation.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .pagerank.yaml)")
	flags.Float64("damping", 0.85, "damping factor in (0, 1)")
	flags.Int("samples", 10000, "number of pages drawn by the sampling estimator")
	flags.Int64("seed", 0, "random seed for the sampling estimator (0 selects a time-based seed)")
	flags.Float64("threshold", 0.001, "convergence threshold of the iterative estimator")
	flags.Int("max-passes", 0, "maximum passes of the iterative estimator (0 is unbounded)")
	flags.Int("workers", 4, "number of concurrent page readers")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	bindFlags(rootCmd, map[string]string{
		"damping":    "damping",
		"samples":    "samples",
		"seed":       "seed",
		"threshold":  "threshold",
		"max_passes": "max-passes",
		"workers":    "workers",
		"log_level":  "log-level",
	})

	rootCmd.AddCommand(rankCmd, serveCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".pagerank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// bindFlags binds config keys to the named persistent or local flags of cmd.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			flag = cmd.Flags().Lookup(name)
		}
		_ = viper.BindPFlag(key, flag)
	}
}

// loadConfig loads the settings for a sub-command whose positional argument,
// if any, is the corpus directory.
func loadConfig(args []string) (config.Config, *logrus.Entry, error) {
	if len(args) > 0 {
		viper.Set("dir", args[0])
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.Dir == "" {
		return config.Config{}, nil, xerrors.Errorf("no corpus directory given")
	}

	rootLogger := logrus.New()
	rootLogger.SetOutput(os.Stderr)
	rootLogger.SetLevel(cfg.Level())
	rootLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return cfg, logrus.NewEntry(rootLogger).WithField("app", "pagerank"), nil
}
