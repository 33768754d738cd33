package cmd

import (
	"fmt"
	"time"

	"github.com/skipjar/skipjar/internal/app"
	"github.com/skipjar/skipjar/internal/config"
	"github.com/spf13/cobra"
)

func AuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Transaction log tools",
	}

	var since time.Duration
	export := &cobra.Command{
		Use:   "export",
		Short: "Archive recent transactions to S3 as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			auditService, err := a.AuditService(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			result, err := auditService.Export(ctx, now.Add(-since), now)
			if err != nil {
				return err
			}

			fmt.Printf("Exported %d transactions to %s\n", result.Transactions, result.Key)
			if result.URL != "" {
				fmt.Println(result.URL)
			}
			return nil
		},
	}
	export.Flags().DurationVar(&since, "since", 24*time.Hour, "export transactions logged within this window")

	cmd.AddCommand(export)
	return cmd
}
