package presence

import (
	"fmt"
	"sort"
)

// MinCountedMinutes is the shortest presence that counts toward a report.
const MinCountedMinutes = 5

// Summary is one student's line in the attendance report.
type Summary struct {
	Name         string `json:"name"`
	TotalMinutes int    `json:"total_minutes"`
	DaysAttended int    `json:"days_attended"`
}

// Summarize totals the counted presences of one student. Days are counted once
// however many presences fall on them.
func Summarize(name string, presences []Presence) Summary {
	summary := Summary{Name: name}
	days := make(map[int]struct{})

	for i := range presences {
		duration := presences[i].DurationMinutes()
		if duration < MinCountedMinutes {
			continue
		}
		summary.TotalMinutes += duration
		days[presences[i].Day] = struct{}{}
	}

	summary.DaysAttended = len(days)
	return summary
}

func (s Summary) String() string {
	line := fmt.Sprintf("%s: %d minutes", s.Name, s.TotalMinutes)
	if s.DaysAttended == 0 {
		return line
	}

	unit := "days"
	if s.DaysAttended == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s in %d %s", line, s.DaysAttended, unit)
}

// Rank orders summaries by total minutes, most first, then by name.
func Rank(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalMinutes != summaries[j].TotalMinutes {
			return summaries[i].TotalMinutes > summaries[j].TotalMinutes
		}
		return summaries[i].Name < summaries[j].Name
	})
}
