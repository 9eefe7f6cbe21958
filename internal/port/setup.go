package port

import (
	"context"
	"errors"

	"github.com/timebg/background-changer/internal/domain"
)

var (
	// ErrAbandoned is returned by SetupUI when the user closes a step without saving.
	ErrAbandoned = errors.New("setup abandoned")
	// ErrEditTimePoints is returned by AssignImages when the user asks to
	// change the boundaries before assigning images.
	ErrEditTimePoints = errors.New("edit time points requested")
)

// SetupUI collects configuration interactively
type SetupUI interface {
	// EditTimePoints lets the user edit, add, remove and sort boundaries,
	// starting from initial. Returns sorted, validated points or ErrAbandoned.
	EditTimePoints(ctx context.Context, initial []domain.TimePoint) ([]domain.TimePoint, error)

	// AssignImages lets the user pick an image per range. The returned slice
	// has the same ranges in the same order. Returns ErrAbandoned if
	// cancelled or ErrEditTimePoints to go back to the boundaries.
	AssignImages(ctx context.Context, ranges []domain.TimeRange) ([]domain.TimeRange, error)
}
