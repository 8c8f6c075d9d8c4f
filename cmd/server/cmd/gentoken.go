package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unity-hands/server/internal/auth"
	"github.com/unity-hands/server/internal/config"
)

func newGenTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gentoken <email>",
		Short: "Mint a session token for an account",
		Long: `Mint a signed session token for the given email, using the server's
JWT_SECRET. Useful for exercising the API from curl without going through
POST /jwt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)
			token, err := tokens.Issue(args[0])
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			cmd.Println(token)
			return nil
		},
	}
}
