package cmd

import (
	"fmt"

	"github.com/skipjar/skipjar/internal/config"
	"github.com/skipjar/skipjar/internal/service"
	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a bearer token for a user (uses JWT_SECRET)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			auth := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
			if !auth.Enabled() {
				return fmt.Errorf("JWT_SECRET is not set")
			}

			token, err := auth.GenerateJWT(args[0])
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
