package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidFormat is returned for anything that is not H:MM, HH:MM or a bare hour.
	ErrInvalidFormat = errors.New("invalid time format")
	// ErrInsufficientPoints means fewer than 2 distinct time points were given.
	ErrInsufficientPoints = errors.New("at least 2 distinct time points are required")
	// ErrDuplicatePoint means the same time point appears twice after normalization.
	ErrDuplicatePoint = errors.New("duplicate time point")
	// ErrUnsortedPoints means time points are not in ascending minute-of-day order.
	ErrUnsortedPoints = errors.New("time points are not in ascending order")
)

// TimePoint is a wall-clock time of day stored as minutes since midnight (0..1439).
// The zero value is 00:00.
type TimePoint uint16

// DefaultTimePoints is the built-in boundary list used when nothing is configured.
var DefaultTimePoints = []string{
	"8:30", "9:30", "10:30", "11:30", "12:30", "14:00",
	"14:30", "15:30", "16:00", "18:00", "19:00",
	"20:00", "21:00", "23:00",
}

// NewTimePoint builds a TimePoint from hour and minute.
func NewTimePoint(hour, minute int) (TimePoint, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d out of range", ErrInvalidFormat, hour, minute)
	}
	return TimePoint(hour*60 + minute), nil
}

// MustTimePoint is like ParseTimePoint but panics on error. Intended for constants and tests.
func MustTimePoint(s string) TimePoint {
	tp, err := ParseTimePoint(s)
	if err != nil {
		panic(err)
	}
	return tp
}

// ParseTimePoint parses "H:MM", "HH:MM" or a bare hour ("8" means 08:00).
func ParseTimePoint(s string) (TimePoint, error) {
	raw := strings.TrimSpace(s)
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		if !isDigits(parts[0]) || len(parts[0]) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		hour, _ := strconv.Atoi(parts[0])
		return NewTimePoint(hour, 0)
	case 2:
		if !isDigits(parts[0]) || !isDigits(parts[1]) || len(parts[0]) > 2 || len(parts[1]) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		hour, _ := strconv.Atoi(parts[0])
		minute, _ := strconv.Atoi(parts[1])
		return NewTimePoint(hour, minute)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// TimePointOf returns the TimePoint for t's wall clock, dropping seconds.
func TimePointOf(t time.Time) TimePoint {
	return TimePoint(t.Hour()*60 + t.Minute())
}

func (tp TimePoint) Hour() int   { return int(tp) / 60 }
func (tp TimePoint) Minute() int { return int(tp) % 60 }

// MinuteOfDay returns hour*60+minute, the ordering key for time points.
func (tp TimePoint) MinuteOfDay() int { return int(tp) }

// String returns the canonical zero-padded HH:MM form.
func (tp TimePoint) String() string {
	return fmt.Sprintf("%02d:%02d", tp.Hour(), tp.Minute())
}

func (tp TimePoint) MarshalText() ([]byte, error) {
	return []byte(tp.String()), nil
}

func (tp *TimePoint) UnmarshalText(b []byte) error {
	parsed, err := ParseTimePoint(string(b))
	if err != nil {
		return err
	}
	*tp = parsed
	return nil
}

// PointsError reports which raw entries failed to parse, by index.
type PointsError struct {
	Invalid []int
}

func (e *PointsError) Error() string {
	return fmt.Sprintf("%d time point(s) have invalid format, use HH:MM (00:00 to 23:59)", len(e.Invalid))
}

func (e *PointsError) Unwrap() error { return ErrInvalidFormat }

// ParseTimePoints parses every raw entry, rejects duplicates and fewer than two
// points, and returns the points sorted by minute of day.
func ParseTimePoints(raw []string) ([]TimePoint, error) {
	points := make([]TimePoint, 0, len(raw))
	var invalid []int
	for i, s := range raw {
		tp, err := ParseTimePoint(s)
		if err != nil {
			invalid = append(invalid, i)
			continue
		}
		points = append(points, tp)
	}
	if len(invalid) > 0 {
		return nil, &PointsError{Invalid: invalid}
	}
	SortTimePoints(points)
	for i := 1; i < len(points); i++ {
		if points[i] == points[i-1] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePoint, points[i])
		}
	}
	if len(points) < 2 {
		return nil, ErrInsufficientPoints
	}
	return points, nil
}

// SortTimePoints sorts in place by minute of day.
func SortTimePoints(points []TimePoint) {
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
}

// FormatTimePoints returns the canonical strings for points, in order.
func FormatTimePoints(points []TimePoint) []string {
	out := make([]string, len(points))
	for i, tp := range points {
		out[i] = tp.String()
	}
	return out
}

// Defaults returns DefaultTimePoints parsed and sorted.
func Defaults() []TimePoint {
	points, err := ParseTimePoints(DefaultTimePoints)
	if err != nil {
		panic(err)
	}
	return points
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
