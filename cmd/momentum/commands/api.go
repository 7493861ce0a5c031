package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantward/momentum/internal/api"
	"github.com/quantward/momentum/internal/api/handlers"
	"github.com/quantward/momentum/internal/report"
	"github.com/quantward/momentum/internal/simbook"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the read-only HTTP API",
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp(true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	runRepo := report.NewRepository(a.db, a.log)
	if err := runRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	bookRepo := simbook.NewRepository(a.db, a.log)
	if err := bookRepo.EnsureSchema(ctx); err != nil {
		return err
	}

	handler := handlers.New(runRepo, bookRepo, a.log)
	server := api.NewServer(a.cfg, api.NewRouter(handler, a.log), a.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
