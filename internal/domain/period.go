package domain

// Period is a coarse part of the day used to label ranges in setup.
type Period int

const (
	Night Period = iota // 21:00-05:00
	Morning             // 05:00-12:00
	Afternoon           // 12:00-17:00
	Evening             // 17:00-21:00
)

func (p Period) String() string {
	switch p {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	default:
		return "Night"
	}
}

// PeriodOf classifies an hour of the day.
func PeriodOf(hour int) Period {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// PeriodName describes a range by the periods of its start and end hours:
// "Morning", "Morning to Afternoon", and so on. A range stays in its start
// period when it ends before that period is over, which includes end hours
// early the next morning. Anything else falls back to the range label.
func PeriodName(r TimeRange) string {
	start := PeriodOf(r.Start.Hour())
	endHour := r.End.Hour()
	end := PeriodOf(endHour)
	switch {
	case end == next(start):
		return start.String() + " to " + end.String()
	case start == Night && end == Night:
		return start.String()
	case start != Night && endHour < periodEnd(start):
		return start.String()
	}
	return r.Label()
}

// periodEnd is the hour a daytime period ends.
func periodEnd(p Period) int {
	switch p {
	case Morning:
		return 12
	case Afternoon:
		return 17
	default:
		return 21
	}
}

func next(p Period) Period {
	switch p {
	case Morning:
		return Afternoon
	case Afternoon:
		return Evening
	case Evening:
		return Night
	default:
		return Morning
	}
}
