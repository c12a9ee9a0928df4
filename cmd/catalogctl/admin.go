package main

import (
	"context"
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/app"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/model"
)

func newBootstrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Migrate and create the configured super admin if no admin exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Prepare(ctx); err != nil {
					return err
				}
				n, err := a.Admins.Count(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Admin accounts: %d\n", n)
				return nil
			})
		},
	}
}

const (
	usernameFlag = "username"
	passwordFlag = "password"
	roleFlag     = "role"
)

func newCreateAdminCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		usernameFlag: &cobraflags.StringFlag{
			Name:  usernameFlag,
			Value: "",
			Usage: "Login name of the new account (required)",
		},
		passwordFlag: &cobraflags.StringFlag{
			Name:  passwordFlag,
			Value: "",
			Usage: "Password of the new account, 8 to 72 bytes (required)",
		},
		roleFlag: &cobraflags.StringFlag{
			Name:  roleFlag,
			Value: string(model.RoleAdmin),
			Usage: "Account role (admin, super_admin)",
		},
	}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := &dto.CreateAdminInput{
				Username: flags[usernameFlag].GetString(),
				Password: flags[passwordFlag].GetString(),
				Role:     flags[roleFlag].GetString(),
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if _, err := database.Migrate(ctx, a.DB); err != nil {
					return err
				}
				created, err := a.Admins.CreateAdmin(ctx, input)
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (id %d)\n", created.Role, created.Username, created.ID)
				return nil
			})
		},
	}

	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
