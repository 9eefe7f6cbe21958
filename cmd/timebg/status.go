package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/port"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the configured time ranges and the one active now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv("Status")
		if err != nil {
			return err
		}
		defer e.Close()

		ranges, ok := e.store.LoadImageConfig(cmd.Context())
		if !ok {
			return fmt.Errorf("no usable image configuration at %s", e.store.ImagesPath())
		}
		printStatus(cmd.OutOrStdout(), ranges, port.SystemClock{}.Now(), e.assets)
		return nil
	},
}

func printStatus(w io.Writer, ranges []domain.TimeRange, now time.Time, assets port.AssetChecker) {
	active := domain.ResolveAt(now, ranges)
	for i := range ranges {
		r := &ranges[i]
		mark := " "
		if r == active {
			mark = "*"
		}
		img := r.Image
		switch {
		case img == "":
			img = "(no image)"
		case !assets.Usable(img):
			img += " (missing)"
		}
		fmt.Fprintf(w, "%s %s  %-22s %s\n", mark, r.Label(), domain.PeriodName(*r), img)
	}
	if active == nil {
		fmt.Fprintf(w, "No range covers %s\n", domain.TimePointOf(now))
	}
}
