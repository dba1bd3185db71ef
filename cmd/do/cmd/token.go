package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/service"
)

func TokenCmd() *cobra.Command {
	var (
		email string
		name  string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a session token signed with JWT_SECRET_KEY",
		Long:  "Mint a session token for calling the API with curl during development.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to mint tokens with APP_ENV=production")
			}
			if ttl == 0 {
				ttl = cfg.SessionTokenTTL
			}

			token, expiresAt, err := service.NewAuthService(cfg.JWTSecret, ttl).IssueToken(&model.User{
				ID:    args[0],
				Email: email,
				Name:  name,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: SESSION_TOKEN_TTL)")
	return cmd
}
