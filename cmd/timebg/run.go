package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timebg/background-changer/internal/adapter/tray"
	"github.com/timebg/background-changer/internal/adapter/tui"
	"github.com/timebg/background-changer/internal/adapter/windows"
	"github.com/timebg/background-changer/internal/metrics"
	"github.com/timebg/background-changer/internal/state"
	"github.com/timebg/background-changer/internal/usecase/lifecycle"
	"github.com/timebg/background-changer/internal/usecase/poller"
)

func runApp(cmd *cobra.Command, args []string) error {
	e, err := newEnv("Time-Based Background")
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := lifecycle.NewController(e.store, tui.NewWizard(e.assets), e.assets)
	ranges, err := ctrl.Start(ctx)
	if errors.Is(err, lifecycle.ErrNoUsableConfiguration) {
		log.Printf("Failed to create configuration: %v", err)
		return errors.New("failed to create configuration, application will exit")
	}
	if err != nil {
		log.Printf("Startup failed: %v", err)
		return fmt.Errorf("startup: %w", err)
	}

	var m *metrics.Poller
	if e.settings.MetricsTextfile != "" {
		m = metrics.NewPoller()
		log.Printf("Writing metrics to %s", e.settings.MetricsTextfile)
	}

	rt := &state.Runtime{}
	p := poller.New(e.store, windows.NewWallpaper(), e.assets, rt, ranges, poller.Options{
		Interval:        e.settings.PollInterval(),
		ChangeCheck:     e.settings.ChangeCheck(),
		ErrorBackoff:    e.settings.ErrorBackoff(),
		Metrics:         m,
		MetricsTextfile: e.settings.MetricsTextfile,
	})
	done := p.Start(ctx)

	fmt.Println("Application is running in the background with a system tray icon.")
	tray.Run(ctx, rt, tray.Actions{
		Reconfigure: func() {
			if err := windows.LaunchSelf("reconfigure"); err != nil {
				log.Printf("Failed to open reconfiguration tool: %v", err)
			}
		},
	})

	rt.RequestStop()
	<-done
	log.Printf("=== Time-Based Background stopped ===")
	return nil
}
