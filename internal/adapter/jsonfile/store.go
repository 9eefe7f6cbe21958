package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timebg/background-changer/internal/domain"
)

type persistedTimePoints struct {
	TimePoints []string `json:"time_points"`
}

type persistedRange struct {
	Start domain.TimePoint `json:"start"`
	End   domain.TimePoint `json:"end"`
	Image string           `json:"image"`
}

type persistedImages struct {
	TimeRanges []persistedRange `json:"time_ranges"`
}

// Store keeps the time points and image documents as two JSON files.
type Store struct {
	mu             sync.Mutex
	timePointsPath string
	imagesPath     string
	imagesModTime  time.Time // last on-disk mtime this process loaded or wrote
}

func New(timePointsPath, imagesPath string) *Store {
	return &Store{
		timePointsPath: timePointsPath,
		imagesPath:     imagesPath,
	}
}

func (s *Store) TimePointsPath() string { return s.timePointsPath }
func (s *Store) ImagesPath() string     { return s.imagesPath }

func (s *Store) Presence(ctx context.Context) (timePoints, images bool) {
	return exists(s.timePointsPath), exists(s.imagesPath)
}

func (s *Store) LoadTimePoints(ctx context.Context) ([]domain.TimePoint, bool) {
	data, err := os.ReadFile(s.timePointsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Time points config %s does not exist", s.timePointsPath)
		} else {
			log.Printf("Error reading time points config: %v", err)
		}
		return nil, false
	}
	var pd persistedTimePoints
	if err := json.Unmarshal(data, &pd); err != nil {
		log.Printf("Error parsing time points config: %v", err)
		return nil, false
	}
	points, err := domain.ParseTimePoints(pd.TimePoints)
	if err != nil {
		log.Printf("Invalid time points config: %v", err)
		return nil, false
	}
	log.Printf("Loaded time points config with %d time points", len(points))
	return points, true
}

func (s *Store) SaveTimePoints(ctx context.Context, points []domain.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pd := persistedTimePoints{TimePoints: domain.FormatTimePoints(points)}
	if err := writeAtomic(s.timePointsPath, pd); err != nil {
		return fmt.Errorf("save time points: %w", err)
	}
	log.Printf("Time points config saved (%d points)", len(points))
	return nil
}

func (s *Store) LoadImageConfig(ctx context.Context) ([]domain.TimeRange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Record the mtime before parsing so a broken document is not reloaded
	// on every poll until it changes again.
	info, err := os.Stat(s.imagesPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading image config: %v", err)
		}
		return nil, false
	}
	s.imagesModTime = info.ModTime()

	data, err := os.ReadFile(s.imagesPath)
	if err != nil {
		log.Printf("Error reading image config: %v", err)
		return nil, false
	}
	var pd persistedImages
	if err := json.Unmarshal(data, &pd); err != nil {
		log.Printf("Error parsing image config: %v", err)
		return nil, false
	}
	ranges := make([]domain.TimeRange, 0, len(pd.TimeRanges))
	for i, pr := range pd.TimeRanges {
		r := domain.TimeRange{Start: pr.Start, End: pr.End, Image: pr.Image}
		if err := r.Validate(); err != nil {
			log.Printf("Invalid time range %d in image config: %v", i, err)
			return nil, false
		}
		ranges = append(ranges, r)
	}
	log.Printf("Loaded image config with %d time ranges", len(ranges))
	return ranges, true
}

func (s *Store) SaveImageConfig(ctx context.Context, ranges []domain.TimeRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pd := persistedImages{TimeRanges: make([]persistedRange, 0, len(ranges))}
	for _, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("save image config: %w", err)
		}
		pd.TimeRanges = append(pd.TimeRanges, persistedRange{
			Start: r.Start,
			End:   r.End,
			Image: r.Image,
		})
	}
	if err := writeAtomic(s.imagesPath, pd); err != nil {
		return fmt.Errorf("save image config: %w", err)
	}
	if info, err := os.Stat(s.imagesPath); err == nil {
		s.imagesModTime = info.ModTime()
	}
	log.Printf("Image config saved (%d ranges)", len(ranges))
	return nil
}

func (s *Store) DiscardImageConfig(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.imagesPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image config: %w", err)
	}
	s.imagesModTime = time.Time{}
	return nil
}

func (s *Store) HasExternalChange(ctx context.Context) bool {
	info, err := os.Stat(s.imagesPath)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return info.ModTime().After(s.imagesModTime)
}

// writeAtomic marshals v and replaces path through a uniquely named temp file.
// The main process and the reconfigure tool may write the same directory.
func writeAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
