package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/logger"
	"github.com/stylecast/wardrobe/internal/metrics"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/storage"
)

func UsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage <user-id>",
		Short: "Show today's LLM quota usage for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), "")

			tables := repository.NewTables(cfg)
			store, err := storage.New(cmd.Context(), cfg, tables.All()...)
			if err != nil {
				return err
			}

			svc := service.NewRateLimitService(
				repository.NewRateLimitRepository(store, tables.RateLimits),
				cfg.MaxRequestsPerDay,
				metrics.Nop{},
			)
			usage, err := svc.Usage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(usage)
		},
	}
}
