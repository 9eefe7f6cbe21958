package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyRange means a range starts and ends at the same time point.
var ErrEmptyRange = errors.New("time range start equals end")

// TimeRange is the cyclic interval [Start, End] with the image shown during it.
// When Start > End the range crosses midnight.
type TimeRange struct {
	Start TimePoint
	End   TimePoint
	Image string // absolute path, empty when unassigned
}

// Wraps reports whether the range crosses midnight.
func (r TimeRange) Wraps() bool { return r.Start > r.End }

// Label is "HH:MM to HH:MM".
func (r TimeRange) Label() string { return r.Start.String() + " to " + r.End.String() }

// Validate rejects a range whose start equals its end.
func (r TimeRange) Validate() error {
	if r.Start == r.End {
		return fmt.Errorf("%w: %s", ErrEmptyRange, r.Start)
	}
	return nil
}

// BuildRanges pairs each point with its successor and wraps the last point to
// the first, producing len(points) ranges with empty images. points must be
// strictly ascending and contain at least two entries.
func BuildRanges(points []TimePoint) ([]TimeRange, error) {
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}
	for i := 1; i < len(points); i++ {
		if points[i] == points[i-1] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePoint, points[i])
		}
		if points[i] < points[i-1] {
			return nil, fmt.Errorf("%w: %s after %s", ErrUnsortedPoints, points[i], points[i-1])
		}
	}
	ranges := make([]TimeRange, len(points))
	for i := range points {
		ranges[i] = TimeRange{Start: points[i], End: points[(i+1)%len(points)]}
	}
	return ranges, nil
}

// CarryAssets copies images from previous onto ranges with an identical
// (start, end) pair. Unmatched ranges keep an empty image. ranges is modified
// in place and returned.
func CarryAssets(ranges, previous []TimeRange) []TimeRange {
	for i := range ranges {
		ranges[i].Image = ""
		for _, p := range previous {
			if p.Start == ranges[i].Start && p.End == ranges[i].End {
				ranges[i].Image = p.Image
				break
			}
		}
	}
	return ranges
}

// Boundaries extracts the start points of ranges in stored order. For ranges
// produced by BuildRanges this reproduces the input time points.
func Boundaries(ranges []TimeRange) []TimePoint {
	points := make([]TimePoint, len(ranges))
	for i, r := range ranges {
		points[i] = r.Start
	}
	return points
}

// DerivedFrom reports whether ranges have exactly the (start, end) pairs
// BuildRanges produces for points.
func DerivedFrom(ranges []TimeRange, points []TimePoint) bool {
	built, err := BuildRanges(points)
	if err != nil || len(built) != len(ranges) {
		return false
	}
	for i := range built {
		if built[i].Start != ranges[i].Start || built[i].End != ranges[i].End {
			return false
		}
	}
	return true
}


// Resolve returns the first range in stored order containing now, or nil.
// Both boundaries are inclusive, so on a shared boundary the earlier stored
// range wins.
func Resolve(now TimePoint, ranges []TimeRange) *TimeRange {
	return resolveSeconds(now.MinuteOfDay()*60, ranges)
}

// ResolveAt is Resolve with second precision: 08:30:20 is after an 08:30 end.
func ResolveAt(t time.Time, ranges []TimeRange) *TimeRange {
	return resolveSeconds(t.Hour()*3600+t.Minute()*60+t.Second(), ranges)
}

func resolveSeconds(now int, ranges []TimeRange) *TimeRange {
	for i := range ranges {
		start := ranges[i].Start.MinuteOfDay() * 60
		end := ranges[i].End.MinuteOfDay() * 60
		if start <= end {
			if start <= now && now <= end {
				return &ranges[i]
			}
		} else if now >= start || now <= end {
			return &ranges[i]
		}
	}
	return nil
}
