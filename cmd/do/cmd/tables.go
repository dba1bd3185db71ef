package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/logger"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/storage"
)

func TablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "DynamoDB table management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create missing tables for the configured TABLE_PREFIX",
		RunE: func(cmd *cobra.Command, args []string) error {
			return createTables(cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the table names for the configured TABLE_PREFIX",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range repository.NewTables(config.Load()).All() {
				fmt.Fprintln(cmd.OutOrStdout(), t.Name)
			}
			return nil
		},
	})
	return cmd
}

func createTables(cmd *cobra.Command) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")

	if cfg.StoreDriver != config.StoreDriverDynamoDB {
		return fmt.Errorf("STORE_DRIVER is %q, tables only exist for %q", cfg.StoreDriver, config.StoreDriverDynamoDB)
	}
	cfg.DynamoDBCreateTables = true

	tables := repository.NewTables(cfg).All()
	if _, err := storage.New(cmd.Context(), cfg, tables...); err != nil {
		return err
	}

	for _, t := range tables {
		fmt.Fprintf(cmd.OutOrStdout(), "==> %s ready\n", t.Name)
	}
	return nil
}
