//go:build !windows

package tray

import (
	"context"
	"log"
)

// run has no tray to show; it only waits for the process to stop.
func run(ctx context.Context, stop Stopper, actions Actions) {
	log.Printf("No system tray on this platform, running until interrupted")
	select {
	case <-ctx.Done():
	case <-stop.Done():
	}
}
