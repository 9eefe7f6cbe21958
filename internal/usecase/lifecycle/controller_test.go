package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/port"
)

type mockStore struct {
	points     []domain.TimePoint
	images     []domain.TimeRange
	rawPoints  bool // document present but unparseable
	rawImages  bool
	discarded  bool
	saveErr    error
	pointSaves int
	imageSaves int
}

func (m *mockStore) Presence(ctx context.Context) (bool, bool) {
	return m.points != nil || m.rawPoints, m.images != nil || m.rawImages
}

func (m *mockStore) LoadTimePoints(ctx context.Context) ([]domain.TimePoint, bool) {
	return m.points, m.points != nil
}

func (m *mockStore) SaveTimePoints(ctx context.Context, points []domain.TimePoint) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.points = points
	m.rawPoints = false
	m.pointSaves++
	return nil
}

func (m *mockStore) LoadImageConfig(ctx context.Context) ([]domain.TimeRange, bool) {
	return append([]domain.TimeRange(nil), m.images...), m.images != nil
}

func (m *mockStore) SaveImageConfig(ctx context.Context, ranges []domain.TimeRange) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.images = ranges
	m.rawImages = false
	m.imageSaves++
	return nil
}

func (m *mockStore) DiscardImageConfig(ctx context.Context) error {
	m.images = nil
	m.rawImages = false
	m.discarded = true
	return nil
}

func (m *mockStore) HasExternalChange(ctx context.Context) bool { return false }

// mockUI replays scripted answers. Each AssignImages call sees the ranges it
// was given in assignSeen.
type mockUI struct {
	pointsAnswers []pointsAnswer
	assign        []func([]domain.TimeRange) ([]domain.TimeRange, error)

	initialSeen [][]domain.TimePoint
	assignSeen  [][]domain.TimeRange
}

type pointsAnswer struct {
	points []string
	err    error
}

func (m *mockUI) EditTimePoints(ctx context.Context, initial []domain.TimePoint) ([]domain.TimePoint, error) {
	m.initialSeen = append(m.initialSeen, initial)
	if len(m.pointsAnswers) == 0 {
		return nil, port.ErrAbandoned
	}
	a := m.pointsAnswers[0]
	m.pointsAnswers = m.pointsAnswers[1:]
	if a.err != nil {
		return nil, a.err
	}
	return domain.ParseTimePoints(a.points)
}

func (m *mockUI) AssignImages(ctx context.Context, ranges []domain.TimeRange) ([]domain.TimeRange, error) {
	m.assignSeen = append(m.assignSeen, append([]domain.TimeRange(nil), ranges...))
	if len(m.assign) == 0 {
		return nil, port.ErrAbandoned
	}
	f := m.assign[0]
	m.assign = m.assign[1:]
	return f(append([]domain.TimeRange(nil), ranges...))
}

// setImage assigns img to the range at index i.
func setImage(i int, img string) func([]domain.TimeRange) ([]domain.TimeRange, error) {
	return func(r []domain.TimeRange) ([]domain.TimeRange, error) {
		r[i].Image = img
		return r, nil
	}
}

func editPoints(r []domain.TimeRange) ([]domain.TimeRange, error) {
	return r, port.ErrEditTimePoints
}

type mockAssets struct{ present map[string]bool }

func (m mockAssets) Usable(path string) bool    { return m.present[path] }
func (m mockAssets) Validate(path string) error { return nil }

func assets(paths ...string) mockAssets {
	m := mockAssets{present: map[string]bool{}}
	for _, p := range paths {
		m.present[p] = true
	}
	return m
}

func mustPoints(t *testing.T, raw ...string) []domain.TimePoint {
	t.Helper()
	p, err := domain.ParseTimePoints(raw)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustRanges(t *testing.T, images []string, raw ...string) []domain.TimeRange {
	t.Helper()
	r, err := domain.BuildRanges(mustPoints(t, raw...))
	if err != nil {
		t.Fatal(err)
	}
	for i := range images {
		r[i].Image = images[i]
	}
	return r
}

func TestStart_BothPresentRunsNormally(t *testing.T) {
	store := &mockStore{
		points: mustPoints(t, "08:00", "20:00"),
		images: mustRanges(t, []string{"day.jpg", "night.jpg"}, "08:00", "20:00"),
	}
	ui := &mockUI{}
	ranges, err := NewController(store, ui, assets("day.jpg")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 2 || ranges[0].Image != "day.jpg" {
		t.Fatalf("unexpected ranges %v", ranges)
	}
	if len(ui.initialSeen)+len(ui.assignSeen) != 0 {
		t.Fatal("setup UI should not run")
	}
	if store.pointSaves+store.imageSaves != 0 {
		t.Fatal("nothing should be written on a normal start")
	}
}

func TestStart_OrphanedImagesAreDiscarded(t *testing.T) {
	store := &mockStore{
		images: mustRanges(t, []string{"stale-a.jpg", "stale-b.jpg"}, "08:00", "20:00"),
	}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"08:00", "20:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(1, "fresh.jpg")},
	}
	ranges, err := NewController(store, ui, assets("stale-a.jpg", "stale-b.jpg", "fresh.jpg")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !store.discarded {
		t.Fatal("orphaned images config should be discarded")
	}
	if len(ui.initialSeen) != 1 || len(ui.initialSeen[0]) != len(domain.DefaultTimePoints) {
		t.Fatalf("want setup to start from defaults, got %v", ui.initialSeen)
	}
	for _, r := range ui.assignSeen[0] {
		if r.Image != "" {
			t.Fatalf("stale image leaked into setup: %v", r)
		}
	}
	for _, r := range store.images {
		if r.Image == "stale-a.jpg" || r.Image == "stale-b.jpg" {
			t.Fatalf("stale image leaked into saved config: %v", store.images)
		}
	}
	if ranges[0].Image != "" || ranges[1].Image != "fresh.jpg" {
		t.Fatalf("unexpected ranges %v", ranges)
	}
	if store.points == nil {
		t.Fatal("time points should be saved")
	}
}

func TestStart_UnreadableTimePointsDiscardImages(t *testing.T) {
	store := &mockStore{
		rawPoints: true,
		images:    mustRanges(t, []string{"stale.jpg"}, "08:00", "20:00"),
	}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"07:00", "19:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(0, "new.jpg")},
	}
	if _, err := NewController(store, ui, assets("stale.jpg", "new.jpg")).Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !store.discarded {
		t.Fatal("images should be discarded when time points are unreadable")
	}
}

func TestStart_TimePointsOnlyReusesThem(t *testing.T) {
	existing := mustPoints(t, "06:00", "12:00", "18:00")
	store := &mockStore{points: existing}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"06:00", "12:00", "18:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(2, "eve.png")},
	}
	ranges, err := NewController(store, ui, assets("eve.png")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ui.initialSeen[0]) != 3 || ui.initialSeen[0][0] != existing[0] {
		t.Fatalf("want existing points as defaults, got %v", ui.initialSeen[0])
	}
	if len(ranges) != 3 || ranges[2].Image != "eve.png" || !ranges[2].Wraps() {
		t.Fatalf("unexpected ranges %v", ranges)
	}
	if !domain.DerivedFrom(store.images, store.points) {
		t.Fatal("saved documents are inconsistent")
	}
}

func TestStart_AbandonedTimePointsFallBackToDefaults(t *testing.T) {
	store := &mockStore{}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{err: port.ErrAbandoned}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(0, "a.jpg")},
	}
	ranges, err := NewController(store, ui, assets("a.jpg")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != len(domain.DefaultTimePoints) {
		t.Fatalf("want %d default ranges, got %d", len(domain.DefaultTimePoints), len(ranges))
	}
	if store.pointSaves != 1 || !domain.DerivedFrom(store.images, store.points) {
		t.Fatal("defaults should be saved together with the images")
	}
}

func TestStart_AbandonedTimePointsAreNotSavedWithoutImages(t *testing.T) {
	store := &mockStore{}
	ui := &mockUI{pointsAnswers: []pointsAnswer{{err: port.ErrAbandoned}}}
	_, err := NewController(store, ui, assets()).Start(context.Background())
	if !errors.Is(err, ErrNoUsableConfiguration) {
		t.Fatalf("want ErrNoUsableConfiguration, got %v", err)
	}
	if store.pointSaves != 0 || store.imageSaves != 0 {
		t.Fatalf("nothing should be saved, got %d %d", store.pointSaves, store.imageSaves)
	}
}

func TestStart_NoUsableImageIsFatal(t *testing.T) {
	store := &mockStore{}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"08:00", "20:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(0, "missing.jpg")},
	}
	_, err := NewController(store, ui, assets()).Start(context.Background())
	if !errors.Is(err, ErrNoUsableConfiguration) {
		t.Fatalf("want ErrNoUsableConfiguration, got %v", err)
	}
	if store.imageSaves != 0 {
		t.Fatal("images config must not be saved")
	}
	if store.pointSaves != 1 {
		t.Fatal("confirmed time points are kept for the next run")
	}
}

func TestStart_UnavailableImagesStillStartNormally(t *testing.T) {
	store := &mockStore{
		points: mustPoints(t, "08:00", "20:00"),
		images: mustRanges(t, []string{`\\nas\wall\day.jpg`, `\\nas\wall\night.jpg`}, "08:00", "20:00"),
	}
	ui := &mockUI{}
	ranges, err := NewController(store, ui, assets()).Start(context.Background())
	if err != nil {
		t.Fatalf("want normal start, got %v", err)
	}
	if len(ui.initialSeen) != 0 || len(ui.assignSeen) != 0 {
		t.Fatalf("setup must not run, got %d edit and %d assign calls", len(ui.initialSeen), len(ui.assignSeen))
	}
	if len(ranges) != 2 || ranges[0].Image != `\\nas\wall\day.jpg` || ranges[1].Image != `\\nas\wall\night.jpg` {
		t.Fatalf("want stored ranges, got %v", ranges)
	}
	if store.pointSaves != 0 || store.imageSaves != 0 || store.discarded {
		t.Fatal("stored documents must be left alone")
	}
}

func TestStart_UnreadableImageConfigRerunsSetup(t *testing.T) {
	store := &mockStore{points: mustPoints(t, "08:00", "20:00"), rawImages: true}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"08:00", "20:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(1, "here.jpg")},
	}
	ranges, err := NewController(store, ui, assets("here.jpg")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ranges[1].Image != "here.jpg" || store.imageSaves != 1 {
		t.Fatalf("unexpected ranges %v", ranges)
	}
}

func TestStart_SaveFailureIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	store := &mockStore{saveErr: boom}
	ui := &mockUI{pointsAnswers: []pointsAnswer{{points: []string{"08:00", "20:00"}}}}
	_, err := NewController(store, ui, assets()).Start(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want save error, got %v", err)
	}
	if len(ui.assignSeen) != 0 {
		t.Fatal("setup must not continue after a failed save")
	}
}

func TestStart_EditTimePointsFromImageStep(t *testing.T) {
	store := &mockStore{}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{
			{points: []string{"08:00", "20:00"}},
			{points: []string{"08:00", "12:00", "20:00"}},
		},
		assign: []func([]domain.TimeRange) ([]domain.TimeRange, error){
			func(r []domain.TimeRange) ([]domain.TimeRange, error) {
				r[1].Image = "night.jpg"
				return r, port.ErrEditTimePoints
			},
			setImage(0, "morning.jpg"),
		},
	}
	ranges, err := NewController(store, ui, assets("night.jpg", "morning.jpg")).Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 3 {
		t.Fatalf("want 3 ranges, got %v", ranges)
	}
	// 20:00-08:00 survives the edit with its image.
	if ranges[2].Image != "night.jpg" || ranges[0].Image != "morning.jpg" || ranges[1].Image != "" {
		t.Fatalf("unexpected images %v", ranges)
	}
	if len(store.points) != 3 || !domain.DerivedFrom(store.images, store.points) {
		t.Fatal("saved documents are inconsistent")
	}
}

func TestReconfigure_CarriesImages(t *testing.T) {
	store := &mockStore{
		points: mustPoints(t, "08:00", "20:00"),
		images: mustRanges(t, []string{"day.jpg", "night.jpg"}, "08:00", "20:00"),
	}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"08:00", "14:00", "20:00"}}},
		assign: []func([]domain.TimeRange) ([]domain.TimeRange, error){
			editPoints,
			setImage(1, "afternoon.jpg"),
		},
	}
	if err := NewController(store, ui, assets("day.jpg", "night.jpg", "afternoon.jpg")).Reconfigure(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ui.assignSeen[0][0].Image != "day.jpg" {
		t.Fatalf("existing images should be shown, got %v", ui.assignSeen[0])
	}
	got := store.images
	if len(got) != 3 || got[0].Image != "" || got[1].Image != "afternoon.jpg" || got[2].Image != "night.jpg" {
		t.Fatalf("unexpected saved ranges %v", got)
	}
	if !domain.DerivedFrom(store.images, store.points) {
		t.Fatal("saved documents are inconsistent")
	}
}

func TestReconfigure_CancelLeavesDocumentsUntouched(t *testing.T) {
	store := &mockStore{
		points: mustPoints(t, "08:00", "20:00"),
		images: mustRanges(t, []string{"day.jpg"}, "08:00", "20:00"),
	}
	ui := &mockUI{
		pointsAnswers: []pointsAnswer{{points: []string{"09:00", "21:00"}}},
		assign:        []func([]domain.TimeRange) ([]domain.TimeRange, error){editPoints},
	}
	err := NewController(store, ui, assets("day.jpg")).Reconfigure(context.Background())
	if !errors.Is(err, port.ErrAbandoned) {
		t.Fatalf("want ErrAbandoned, got %v", err)
	}
	if store.pointSaves+store.imageSaves != 0 {
		t.Fatal("cancel must not write anything")
	}
}

func TestReconfigure_RequiresUsableImage(t *testing.T) {
	store := &mockStore{points: mustPoints(t, "08:00", "20:00")}
	ui := &mockUI{
		assign: []func([]domain.TimeRange) ([]domain.TimeRange, error){setImage(0, "nowhere.jpg")},
	}
	err := NewController(store, ui, assets()).Reconfigure(context.Background())
	if !errors.Is(err, ErrNoUsableConfiguration) {
		t.Fatalf("want ErrNoUsableConfiguration, got %v", err)
	}
	if store.imageSaves != 0 {
		t.Fatal("images config must not be saved")
	}
}
