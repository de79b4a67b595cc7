package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrDiipo/pagerank/service"
	"github.com/MrDiipo/pagerank/service/frontend"
	"github.com/MrDiipo/pagerank/service/ranker"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [corpus-dir]",
	Short: "Rank a corpus and serve the results over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen-addr", ":8080", "address for the HTTP API")
	serveCmd.Flags().Duration("update-interval", 0, "re-rank the corpus at this interval (0 ranks once)")
	bindFlags(serveCmd, map[string]string{
		"listen_addr":     "listen-addr",
		"update_interval": "update-interval",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(args)
	if err != nil {
		return err
	}

	var latest ranker.Latest
	rankerSvc, err := ranker.NewService(ranker.Config{
		Dir:            cfg.Dir,
		FetchWorkers:   cfg.Workers,
		Ranking:        cfg.Ranking(logger.WithField("service", "estimator")),
		UpdateInterval: cfg.UpdateInterval,
		Publisher:      &latest,
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}

	frontendSvc, err := frontend.NewService(frontend.Config{
		Results:    &latest,
		ListenAddr: cfg.ListenAddr,
		Logger:     logger.WithField("service", "front-end"),
	})
	if err != nil {
		return err
	}

	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFn()

	logger.Info("starting services")
	if err = (service.Group{rankerSvc, frontendSvc}).Run(ctx); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
