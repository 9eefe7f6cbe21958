package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timebg/background-changer/internal/adapter/tui"
	"github.com/timebg/background-changer/internal/port"
	"github.com/timebg/background-changer/internal/usecase/lifecycle"
)

var reconfigureCmd = &cobra.Command{
	Use:   "reconfigure",
	Short: "Edit time points and images",
	Long: `Edit the time points and the image of every time range. A running
instance notices the saved configuration and applies it on its own.`,
	Args: cobra.NoArgs,
	RunE: runReconfigure,
}

func runReconfigure(cmd *cobra.Command, args []string) error {
	e, err := newEnv("Reconfiguration")
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := lifecycle.NewController(e.store, tui.NewWizard(e.assets), e.assets)
	err = ctrl.Reconfigure(ctx)
	switch {
	case errors.Is(err, port.ErrAbandoned):
		log.Printf("Reconfiguration cancelled")
		fmt.Fprintln(cmd.OutOrStdout(), "Reconfiguration cancelled. Configuration unchanged.")
		return nil
	case err != nil:
		log.Printf("Reconfiguration failed: %v", err)
		return fmt.Errorf("reconfiguration failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved. A running instance applies it automatically.")
	return nil
}
