//go:build windows

package tray

import (
	"context"
	"log"

	"github.com/getlantern/systray"
)

func run(ctx context.Context, stop Stopper, actions Actions) {
	onReady := func() {
		systray.SetIcon(Icon())
		systray.SetTitle(Title)
		systray.SetTooltip(Tooltip)

		mStatus := systray.AddMenuItem("Status: Running", "")
		mStatus.Disable()
		systray.AddSeparator()
		mReconfigure := systray.AddMenuItem("Reconfigure", "Change time points and images")
		mExit := systray.AddMenuItem("Exit", "Stop changing the background")

		go func() {
			for {
				select {
				case <-mReconfigure.ClickedCh:
					if actions.Reconfigure != nil {
						go actions.Reconfigure()
					}
				case <-mExit.ClickedCh:
					log.Printf("Exit requested from tray")
					stop.RequestStop()
					systray.Quit()
					return
				case <-ctx.Done():
					systray.Quit()
					return
				case <-stop.Done():
					systray.Quit()
					return
				}
			}
		}()
	}
	systray.Run(onReady, func() { log.Printf("Tray icon removed") })
}
