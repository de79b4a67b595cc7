package main

import (
	"os"

	"github.com/MrDiipo/pagerank/config"
	"github.com/MrDiipo/pagerank/report"
	"github.com/MrDiipo/pagerank/service/ranker"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank [corpus-dir]",
	Short: "Rank a corpus once and print the results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().String("format", config.FormatText, "output format (text or json)")
	bindFlags(rankCmd, map[string]string{"format": "format"})
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(args)
	if err != nil {
		return err
	}

	svc, err := ranker.NewService(ranker.Config{
		Dir:          cfg.Dir,
		FetchWorkers: cfg.Workers,
		Ranking:      cfg.Ranking(logger.WithField("service", "estimator")),
		Logger:       logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}

	res, err := svc.Rank(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Format == config.FormatJSON {
		return report.WriteJSON(os.Stdout, res)
	}
	return report.WriteResultText(os.Stdout, res)
}
