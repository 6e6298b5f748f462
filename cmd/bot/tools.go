package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/moderation"
	"github.com/xaenox/nico-bot/internal/storage"
)

func checkURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-url <url>...",
		Short: "Report whether each URL is on the official domain allow-list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			v := moderation.NewDomainValidator(cfg.Moderation.OfficialDomains)
			for _, link := range args {
				verdict := "unofficial"
				if v.IsOfficial(link) {
					verdict = "official"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict, link)
			}
			return nil
		},
	}
}

func importFactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-facts <file>",
		Short: "Load platform facts from a JSON/YAML file into PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			facts, err := storage.NewFileStorage(args[0]).LoadFacts(ctx)
			if err != nil {
				return err
			}

			store, err := storage.NewPostgresStorage(ctx, databaseConfig(cfg), logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveFacts(ctx, facts); err != nil {
				return err
			}
			logger.Info("Facts imported", zap.String("file", args[0]))
			return nil
		},
	}
}
