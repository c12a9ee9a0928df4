package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinestrading/catalog-service/internal/app"
	"github.com/vinestrading/catalog-service/internal/database"
)

const forceFlag = "force"

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				applied, err := database.Migrate(ctx, a.DB)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
					return nil
				}
				for _, name := range applied {
					fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
				}
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample categories and products",
		Long: `Add the sample categories that are missing (matched by slug). Sample
products are only added while the catalog has no products at all, so running
seed twice changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Prepare(ctx); err != nil {
					return err
				}
				res, err := a.Seeder().Run(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Categories added: %d\nProducts added: %d\nProducts skipped: %d\n",
					res.CategoriesAdded, res.ProductsAdded, res.ProductsSkipped)
				return nil
			})
		},
	}
}

func newResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop every catalog table and recreate the empty schema",
		Long: `Drop the categories, products and admins tables together with the
migration history, then apply the migrations again. All data is lost, so the
command refuses to run without --force. Uploaded images are left on disk.`,
		Args: cobra.NoArgs,
	}
	force := cmd.Flags().Bool(forceFlag, false, "Confirm that all catalog data may be deleted")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if !*force {
			return errors.New("reset-db deletes all data; pass --force to continue")
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := database.Reset(ctx, a.DB); err != nil {
				return err
			}
			if _, err := database.Migrate(ctx, a.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database reset")
			return nil
		})
	}
	return cmd
}
