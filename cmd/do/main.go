package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skipjar/skipjar/cmd/do/cmd"
	"github.com/skipjar/skipjar/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "do",
		Short:         "Operations and development tools for skipjar",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{Dev: true})
		},
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SeedCmd())
	rootCmd.AddCommand(cmd.AuditCmd())
	rootCmd.AddCommand(cmd.TokenCmd())

	err := rootCmd.ExecuteContext(ctx)
	logger.Flush(time.Second)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
