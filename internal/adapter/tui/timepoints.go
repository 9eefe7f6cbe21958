package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timebg/background-changer/internal/domain"
)

const newTimePoint = "12:00"

// timePointsModel edits the boundary list. Entries keep the raw text so an
// invalid value survives until the user fixes it.
type timePointsModel struct {
	entries []string
	invalid map[int]bool
	cursor  int

	editing bool
	input   textinput.Model

	confirmQuit bool
	err         string

	result    []domain.TimePoint
	abandoned bool
}

func newTimePointsModel(initial []domain.TimePoint) *timePointsModel {
	input := textinput.New()
	input.Placeholder = "HH:MM"
	input.Prompt = "> "
	input.CharLimit = 5

	return &timePointsModel{
		entries: domain.FormatTimePoints(initial),
		invalid: map[int]bool{},
		input:   input,
	}
}

func (m *timePointsModel) Init() tea.Cmd { return nil }

func (m *timePointsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		m.abandoned = true
		return m, tea.Quit
	}
	if m.editing {
		return m.handleEditInput(key)
	}
	if m.confirmQuit {
		switch key.String() {
		case "y", "Y":
			m.abandoned = true
			return m, tea.Quit
		default:
			m.confirmQuit = false
		}
		return m, nil
	}

	m.err = ""
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "a":
		m.entries = append(m.entries, newTimePoint)
		m.cursor = len(m.entries) - 1
	case "d":
		m.delete()
	case "e":
		if len(m.entries) > 0 {
			m.editing = true
			m.input.SetValue(m.entries[m.cursor])
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case "s":
		m.sort()
	case "enter":
		if m.validate() {
			return m, tea.Quit
		}
	case "q", "esc":
		m.confirmQuit = true
	}
	return m, nil
}

func (m *timePointsModel) handleEditInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		raw := strings.TrimSpace(m.input.Value())
		if tp, err := domain.ParseTimePoint(raw); err == nil {
			m.entries[m.cursor] = tp.String()
			delete(m.invalid, m.cursor)
			m.err = ""
		} else {
			m.entries[m.cursor] = raw
			m.invalid[m.cursor] = true
			m.err = "Invalid time, use HH:MM (00:00 to 23:59)"
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *timePointsModel) delete() {
	if len(m.entries) <= 2 {
		m.err = "You need at least 2 time points"
		return
	}
	m.entries = append(m.entries[:m.cursor], m.entries[m.cursor+1:]...)
	shifted := map[int]bool{}
	for i := range m.invalid {
		switch {
		case i < m.cursor:
			shifted[i] = true
		case i > m.cursor:
			shifted[i-1] = true
		}
	}
	m.invalid = shifted
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
}

// sort orders valid entries by minute of day. Invalid entries block sorting.
func (m *timePointsModel) sort() {
	points, ok := m.parseAll()
	if !ok {
		m.err = "Fix the highlighted time points before sorting"
		return
	}
	domain.SortTimePoints(points)
	m.entries = domain.FormatTimePoints(points)
}

func (m *timePointsModel) parseAll() ([]domain.TimePoint, bool) {
	m.invalid = map[int]bool{}
	points := make([]domain.TimePoint, 0, len(m.entries))
	for i, raw := range m.entries {
		tp, err := domain.ParseTimePoint(raw)
		if err != nil {
			m.invalid[i] = true
			continue
		}
		points = append(points, tp)
	}
	return points, len(m.invalid) == 0
}

func (m *timePointsModel) validate() bool {
	points, err := domain.ParseTimePoints(m.entries)
	var pe *domain.PointsError
	switch {
	case errors.As(err, &pe):
		m.invalid = map[int]bool{}
		for _, i := range pe.Invalid {
			m.invalid[i] = true
		}
		m.err = pe.Error()
		return false
	case errors.Is(err, domain.ErrDuplicatePoint):
		m.invalid = map[int]bool{}
		m.err = "Duplicate time points found, each time point must be unique"
		return false
	case errors.Is(err, domain.ErrInsufficientPoints):
		m.err = "You need at least 2 time points"
		return false
	case err != nil:
		m.err = err.Error()
		return false
	}
	m.invalid = map[int]bool{}
	m.entries = domain.FormatTimePoints(points)
	m.result = points
	return true
}

func (m *timePointsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Configure Time Points") + "\n")
	b.WriteString(mutedStyle.Render("Each time point starts a range that ends at the next one; the last wraps to the first.") + "\n\n")

	for i, raw := range m.entries {
		line := raw
		if m.invalid[i] {
			line = invalidStyle.Render(raw + "  (invalid)")
		}
		b.WriteString(fmt.Sprintf(" %s %2d. %s\n", cursor(i == m.cursor), i+1, line))
	}

	if m.editing {
		b.WriteString("\nEdit time point:\n")
		b.WriteString(m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: apply  esc: cancel") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	if m.confirmQuit {
		b.WriteString("\n" + confirmStyle.Render("Exit without saving? Changes will be lost. (y/N)") + "\n")
		return b.String()
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: move  e: edit  a: add  d: delete  s: sort  enter: save & continue  q: quit") + "\n")
	return b.String()
}
