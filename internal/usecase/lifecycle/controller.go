package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/port"
)

// ErrNoUsableConfiguration means setup finished without a single usable image.
var ErrNoUsableConfiguration = errors.New("no usable configuration: no image assigned to any time range")

// Controller decides which setup steps run before the poller can start.
type Controller struct {
	store  port.ConfigStore
	ui     port.SetupUI
	assets port.AssetChecker
}

func NewController(store port.ConfigStore, ui port.SetupUI, assets port.AssetChecker) *Controller {
	return &Controller{store: store, ui: ui, assets: assets}
}

// Start inspects the stored documents, repairs or completes them through the
// setup UI when needed, and returns the ranges to run with.
func (c *Controller) Start(ctx context.Context) ([]domain.TimeRange, error) {
	hasPoints, hasImages := c.store.Presence(ctx)
	log.Printf("Configuration status - images config: %v, time points config: %v", hasImages, hasPoints)

	var points []domain.TimePoint
	if hasPoints {
		points, hasPoints = c.store.LoadTimePoints(ctx)
	}

	if hasImages && !hasPoints {
		log.Printf("Images config exists without time points, discarding it and running first-time setup")
		if err := c.store.DiscardImageConfig(ctx); err != nil {
			log.Printf("Error removing images config: %v", err)
		}
		hasImages = false
	}

	if hasImages {
		ranges, ok := c.store.LoadImageConfig(ctx)
		if ok {
			if !domain.DerivedFrom(ranges, points) {
				log.Printf("Images config does not match the time points document")
			}
			// Images may be on a drive that is not mounted yet; the poller
			// skips them until they appear.
			if !c.usable(ranges) {
				log.Printf("No configured image is available right now")
			}
			log.Printf("Both configuration files loaded, running normally")
			return ranges, nil
		}
		log.Printf("Images config unreadable, running setup")
	}

	return c.setup(ctx, points)
}

func (c *Controller) setup(ctx context.Context, existing []domain.TimePoint) ([]domain.TimeRange, error) {
	log.Printf("Starting setup process")
	initial := existing
	if len(initial) == 0 {
		initial = domain.Defaults()
	}

	pointsSaved := false
	points, err := c.ui.EditTimePoints(ctx, initial)
	switch {
	case errors.Is(err, port.ErrAbandoned):
		log.Printf("Time points setup abandoned, using default time points")
		points = domain.Defaults()
	case err != nil:
		return nil, fmt.Errorf("time points setup: %w", err)
	default:
		if err := c.store.SaveTimePoints(ctx, points); err != nil {
			return nil, err
		}
		pointsSaved = true
	}

	ranges, err := domain.BuildRanges(points)
	if err != nil {
		return nil, err
	}

	points, ranges, edited, err := c.assign(ctx, points, ranges)
	if errors.Is(err, port.ErrAbandoned) {
		log.Printf("Image setup abandoned")
		return nil, ErrNoUsableConfiguration
	}
	if err != nil {
		return nil, err
	}
	if !c.usable(ranges) {
		return nil, ErrNoUsableConfiguration
	}

	if !pointsSaved || edited {
		if err := c.store.SaveTimePoints(ctx, points); err != nil {
			return nil, err
		}
	}
	if err := c.store.SaveImageConfig(ctx, ranges); err != nil {
		return nil, err
	}
	log.Printf("Setup complete with %d time ranges", len(ranges))
	return ranges, nil
}

// Reconfigure edits the existing configuration. Nothing is written unless the
// user saves with at least one usable image; cancelling returns ErrAbandoned.
func (c *Controller) Reconfigure(ctx context.Context) error {
	points, ok := c.store.LoadTimePoints(ctx)
	if !ok {
		points = domain.Defaults()
	}
	previous, _ := c.store.LoadImageConfig(ctx)

	var ranges []domain.TimeRange
	if domain.DerivedFrom(previous, points) {
		ranges = append(ranges, previous...)
	} else {
		built, err := domain.BuildRanges(points)
		if err != nil {
			return err
		}
		domain.CarryAssets(built, previous)
		ranges = built
	}

	points, ranges, _, err := c.assign(ctx, points, ranges)
	if errors.Is(err, port.ErrAbandoned) {
		log.Printf("Reconfiguration cancelled, configuration unchanged")
		return err
	}
	if err != nil {
		return err
	}
	if !c.usable(ranges) {
		return ErrNoUsableConfiguration
	}

	if err := c.store.SaveTimePoints(ctx, points); err != nil {
		return err
	}
	if err := c.store.SaveImageConfig(ctx, ranges); err != nil {
		return err
	}
	log.Printf("Reconfiguration saved, changes will be applied automatically")
	return nil
}

// assign runs the image step, going back to the time point editor whenever
// the user asks. Edited boundaries rebuild the ranges and keep the images of
// ranges whose start and end did not move.
func (c *Controller) assign(ctx context.Context, points []domain.TimePoint, ranges []domain.TimeRange) ([]domain.TimePoint, []domain.TimeRange, bool, error) {
	edited := false
	for {
		assigned, err := c.ui.AssignImages(ctx, ranges)
		if !errors.Is(err, port.ErrEditTimePoints) {
			return points, assigned, edited, err
		}
		if assigned != nil {
			ranges = assigned
		}

		newPoints, err := c.ui.EditTimePoints(ctx, points)
		if errors.Is(err, port.ErrAbandoned) {
			continue
		}
		if err != nil {
			return nil, nil, false, fmt.Errorf("time points setup: %w", err)
		}
		rebuilt, err := domain.BuildRanges(newPoints)
		if err != nil {
			return nil, nil, false, err
		}
		domain.CarryAssets(rebuilt, ranges)
		log.Printf("Time points updated, %d ranges rebuilt", len(rebuilt))
		points, ranges, edited = newPoints, rebuilt, true
	}
}

func (c *Controller) usable(ranges []domain.TimeRange) bool {
	for _, r := range ranges {
		if c.assets.Usable(r.Image) {
			return true
		}
	}
	return false
}
