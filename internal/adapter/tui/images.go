package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/port"
)

// imagesModel assigns an image path to each range.
type imagesModel struct {
	ranges []domain.TimeRange
	assets port.AssetChecker
	cursor int

	editing bool
	input   textinput.Model

	confirmQuit bool
	err         string

	saved      bool
	editPoints bool
	abandoned  bool
}

func newImagesModel(ranges []domain.TimeRange, assets port.AssetChecker) *imagesModel {
	input := textinput.New()
	input.Placeholder = `C:\Users\me\Pictures\morning.jpg`
	input.Prompt = "> "
	input.Width = 60

	return &imagesModel{
		ranges: append([]domain.TimeRange(nil), ranges...),
		assets: assets,
		input:  input,
	}
}

func (m *imagesModel) Init() tea.Cmd { return nil }

func (m *imagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		if m.cursor < len(m.ranges)-1 {
			m.cursor++
		}
	case "e", "enter":
		if len(m.ranges) > 0 {
			m.editing = true
			m.input.SetValue(m.ranges[m.cursor].Image)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case "x":
		if len(m.ranges) > 0 {
			m.ranges[m.cursor].Image = ""
		}
	case "t":
		m.editPoints = true
		return m, tea.Quit
	case "s":
		if !m.hasUsable() {
			m.err = "Please select at least one existing image for a time range"
			return m, nil
		}
		m.saved = true
		return m, tea.Quit
	case "q", "esc":
		m.confirmQuit = true
	}
	return m, nil
}

func (m *imagesModel) handleEditInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		path := cleanPath(m.input.Value())
		m.ranges[m.cursor].Image = path
		if path != "" {
			if err := m.assets.Validate(path); err != nil {
				m.err = err.Error()
			}
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

func (m *imagesModel) hasUsable() bool {
	for _, r := range m.ranges {
		if m.assets.Usable(r.Image) {
			return true
		}
	}
	return false
}

// cleanPath strips the quotes Explorer adds with "Copy as path" and makes the
// path absolute.
func cleanPath(raw string) string {
	p := strings.Trim(strings.TrimSpace(raw), `"'`)
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (m *imagesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Configure Time-Based Backgrounds") + "\n")
	b.WriteString(mutedStyle.Render("Select an image for each time range.") + "\n\n")

	for i, r := range m.ranges {
		image := unsetImageTxt
		if r.Image != "" {
			image = r.Image
			if !m.assets.Usable(r.Image) {
				image = invalidStyle.Render(r.Image + "  (missing)")
			}
		}
		label := r.Label()
		if r.Wraps() {
			label += " (next day)"
		}
		b.WriteString(fmt.Sprintf(" %s %-22s %s\n", cursor(i == m.cursor), periodStyle.Render(domain.PeriodName(r)), mutedStyle.Render(label)))
		b.WriteString(fmt.Sprintf("     %s\n", image))
	}

	if m.editing {
		b.WriteString("\nImage path for " + m.ranges[m.cursor].Label() + ":\n")
		b.WriteString(m.input.View() + "\n")
		b.WriteString(helpStyle.Render("enter: apply  esc: cancel") + "\n")
		return b.String()
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	if m.confirmQuit {
		b.WriteString("\n" + confirmStyle.Render("Cancel? Changes will not be saved. (y/N)") + "\n")
		return b.String()
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: move  e: set image  x: clear  t: time points  s: save  q: cancel") + "\n")
	return b.String()
}
