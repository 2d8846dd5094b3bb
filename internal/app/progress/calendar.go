package progress

import (
	"fmt"
	"time"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// gridCells is the constant month-grid size: 6 full weeks of 7 days, even
// when the month itself needs only 5 rows. Constant size simplifies
// rendering.
const gridCells = 42

// MonthGrid buckets logs into the 42-cell grid for the month containing
// target. The grid starts on the Sunday at or before the 1st, covers every
// day of the month, and pads with next-month days to exactly 42 contiguous
// dates. Fully recomputed on every call — no incremental diffing.
func MonthGrid(logs []domain.WorkoutLog, target, today domain.Date) []domain.CalendarDay {
	type dayTotals struct {
		count   int
		seconds int
	}
	byDate := make(map[domain.Date]dayTotals, len(logs))
	for _, l := range logs {
		t := byDate[l.Date]
		t.count++
		if l.DurationSeconds > 0 {
			t.seconds += l.DurationSeconds
		}
		byDate[l.Date] = t
	}

	first := target.FirstOfMonth()
	start := first.AddDays(-int(first.Weekday())) // Back up to Sunday

	cells := make([]domain.CalendarDay, 0, gridCells)
	for i := 0; i < gridCells; i++ {
		day := start.AddDays(i)
		totals := byDate[day]
		cells = append(cells, domain.CalendarDay{
			Date:           day,
			HasWorkout:     totals.count > 0,
			WorkoutCount:   totals.count,
			DayOfWeek:      int(day.Weekday()),
			IsToday:        day == today,
			IsCurrentMonth: day.Year == target.Year && day.Month == target.Month,
			TotalMinutes:   (totals.seconds + 30) / 60,
		})
	}
	return cells
}

// ParseMonth parses "YYYY-MM" into the first day of that month.
func ParseMonth(s string) (domain.Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: %q", domain.ErrInvalidMonth, s)
	}
	return domain.DateOf(t), nil
}

// DayHeaders returns the Sunday-start weekday labels for the grid header.
func DayHeaders() []string {
	return []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
}
