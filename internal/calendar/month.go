package calendar

import (
	"fmt"
	"time"

	"songcalendar/internal/models"
)

type CellKind int

const (
	PrevMonth CellKind = iota
	CurrentMonth
	NextMonth
)

// Cell is one square of the month grid. Only CurrentMonth cells carry a Date.
type Cell struct {
	Day      int
	Date     string
	Kind     CellKind
	HasEvent bool
	Today    bool
	Selected bool
}

type Month struct {
	Year  int
	Month time.Month
	Cells []Cell
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) HasSelection() bool {
	for _, c := range m.Cells {
		if c.Selected {
			return true
		}
	}
	return false
}

func (m Month) Contains(date string) bool {
	for _, c := range m.Cells {
		if c.Kind == CurrentMonth && c.Date == date {
			return true
		}
	}
	return false
}

func (m *Month) selectDate(date string) {
	for i := range m.Cells {
		m.Cells[i].Selected = m.Cells[i].Kind == CurrentMonth && m.Cells[i].Date == date
	}
}

// DateKey formats a day the way the catalog keys it (YYYY-MM-DD).
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// BuildMonth lays out a Sunday-first grid: the tail of the previous month up to
// the weekday of the 1st, every day of month, then next-month days up to Saturday.
func BuildMonth(year int, month time.Month, today time.Time, selected string, catalog models.Catalog) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	prevLastDate := first.AddDate(0, 0, -1).Day()
	todayKey := DateKey(today.Year(), today.Month(), today.Day())

	view := Month{Year: year, Month: month}

	for i := int(first.Weekday()); i > 0; i-- {
		view.Cells = append(view.Cells, Cell{Day: prevLastDate - i + 1, Kind: PrevMonth})
	}

	for day := 1; day <= last.Day(); day++ {
		date := DateKey(year, month, day)
		view.Cells = append(view.Cells, Cell{
			Day:      day,
			Date:     date,
			Kind:     CurrentMonth,
			HasEvent: catalog.HasSongs(date),
			Today:    date == todayKey,
			Selected: date == selected,
		})
	}

	lastWeekday := int(last.Weekday())
	for i := lastWeekday; i < 6; i++ {
		view.Cells = append(view.Cells, Cell{Day: i - lastWeekday + 1, Kind: NextMonth})
	}

	return view
}
