package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/timebg/background-changer/internal/domain"
)

type stubAssets map[string]bool

func (s stubAssets) Usable(path string) bool    { return s[path] }
func (s stubAssets) Validate(path string) error { return nil }

func TestPrintStatus_MarksActiveRange(t *testing.T) {
	points, _ := domain.ParseTimePoints([]string{"08:00", "20:00"})
	ranges, _ := domain.BuildRanges(points)
	ranges[0].Image = "/img/day.png"
	ranges[1].Image = "/img/gone.png"

	var buf bytes.Buffer
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	printStatus(&buf, ranges, now, stubAssets{"/img/day.png": true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "* 08:00 to 20:00") {
		t.Errorf("want first range marked active, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  20:00 to 08:00") || !strings.HasSuffix(lines[1], "/img/gone.png (missing)") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestPrintStatus_Gap(t *testing.T) {
	ranges := []domain.TimeRange{{Start: domain.MustTimePoint("08:00"), End: domain.MustTimePoint("09:00")}}
	var buf bytes.Buffer
	printStatus(&buf, ranges, time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local), stubAssets{})
	out := buf.String()
	if !strings.Contains(out, "(no image)") || !strings.Contains(out, "No range covers 10:00") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"reconfigure", "status"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("want %s subcommand, got %v %v", name, cmd, err)
		}
	}
	f := rootCmd.Flags().Lookup("reconfigure")
	if f == nil || !f.Hidden {
		t.Fatal("want hidden --reconfigure flag")
	}
}
