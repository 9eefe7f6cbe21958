package port

import (
	"context"

	"github.com/timebg/background-changer/internal/domain"
)

// ConfigStore persists the two configuration documents: the time points and
// the time-range-to-image mapping. Each document is rewritten as a whole.
type ConfigStore interface {
	// Presence reports which documents exist on disk, parseable or not.
	Presence(ctx context.Context) (timePoints, images bool)

	// LoadTimePoints returns the stored time points, or false if the document
	// is missing or cannot be parsed
	LoadTimePoints(ctx context.Context) ([]domain.TimePoint, bool)

	// SaveTimePoints rewrites the time points document
	SaveTimePoints(ctx context.Context, points []domain.TimePoint) error

	// LoadImageConfig returns the stored ranges, or false if the document is
	// missing or cannot be parsed. Records the document's modification time.
	LoadImageConfig(ctx context.Context) ([]domain.TimeRange, bool)

	// SaveImageConfig rewrites the image document and records its new modification time
	SaveImageConfig(ctx context.Context, ranges []domain.TimeRange) error

	// DiscardImageConfig removes the image document
	DiscardImageConfig(ctx context.Context) error

	// HasExternalChange reports whether the image document on disk is newer
	// than the last version this process loaded or wrote
	HasExternalChange(ctx context.Context) bool
}
