package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/port"
)

// Wizard runs the setup steps as full-screen terminal programs.
type Wizard struct {
	assets port.AssetChecker
	opts   []tea.ProgramOption
}

func NewWizard(assets port.AssetChecker, opts ...tea.ProgramOption) *Wizard {
	return &Wizard{assets: assets, opts: opts}
}

func (w *Wizard) EditTimePoints(ctx context.Context, initial []domain.TimePoint) ([]domain.TimePoint, error) {
	final, err := w.run(ctx, newTimePointsModel(initial))
	if err != nil {
		return nil, fmt.Errorf("time points editor: %w", err)
	}
	m := final.(*timePointsModel)
	if m.abandoned || m.result == nil {
		return nil, port.ErrAbandoned
	}
	return m.result, nil
}

func (w *Wizard) AssignImages(ctx context.Context, ranges []domain.TimeRange) ([]domain.TimeRange, error) {
	final, err := w.run(ctx, newImagesModel(ranges, w.assets))
	if err != nil {
		return nil, fmt.Errorf("image editor: %w", err)
	}
	m := final.(*imagesModel)
	switch {
	case m.editPoints:
		return m.ranges, port.ErrEditTimePoints
	case m.abandoned || !m.saved:
		return nil, port.ErrAbandoned
	}
	return m.ranges, nil
}

func (w *Wizard) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, w.opts...)
	return tea.NewProgram(model, opts...).Run()
}
