package calendar

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

const upcomingLimit = 3

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Render writes the month grid, the tabs and the pane of c as plain text.
// Selected days are bracketed, days with songs starred and today marked with '>'.
func Render(w io.Writer, c *Controller) error {
	var b strings.Builder
	view := c.View()

	fmt.Fprintf(&b, "%s\n", view.Title())
	for _, d := range weekdayHeader {
		fmt.Fprintf(&b, " %-4s", d)
	}
	b.WriteString("\n")

	for i, cell := range view.Cells {
		b.WriteString(cellText(cell))
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	if len(view.Cells)%7 != 0 {
		b.WriteString("\n")
	}

	if dates := datesWithSongs(c); len(dates) > 0 {
		fmt.Fprintf(&b, "\nSongs this month: %s\n", strings.Join(dates, ", "))
	}
	if upcoming := upcomingDates(c, upcomingLimit); len(upcoming) > 0 {
		fmt.Fprintf(&b, "Upcoming: %s\n", strings.Join(upcoming, ", "))
	}

	b.WriteString("\n")
	for _, tab := range c.Tabs() {
		switch {
		case tab.Disabled:
			fmt.Fprintf(&b, "(%s) ", tab.Label)
		case tab.Active:
			fmt.Fprintf(&b, "[%d: %s] ", tab.Index+1, tab.Label)
		default:
			fmt.Fprintf(&b, " %d: %s  ", tab.Index+1, tab.Label)
		}
	}
	b.WriteString("\n")

	pane := c.Pane()
	if pane.Date != "" {
		fmt.Fprintf(&b, "\n%s\n", pane.Date)
	}
	fmt.Fprintf(&b, "%s\n%s\n", pane.Heading, pane.Title)
	if pane.HasSong {
		fmt.Fprintf(&b, "Audio: %s\n", pane.AudioURL)
		if pane.CoverURL != "" {
			fmt.Fprintf(&b, "Cover: %s\n", pane.CoverURL)
		}
	}
	fmt.Fprintf(&b, "\n%s\n", pane.Lyrics)

	_, err := io.WriteString(w, b.String())
	return err
}

func cellText(cell Cell) string {
	if cell.Kind != CurrentMonth {
		return fmt.Sprintf("  %2d ", cell.Day)
	}
	left, right, mark := " ", " ", " "
	if cell.Today {
		left = ">"
	}
	if cell.Selected {
		left, right = "[", "]"
	}
	if cell.HasEvent {
		mark = "*"
	}
	return fmt.Sprintf("%s%2d%s%s", left, cell.Day, mark, right)
}

func datesWithSongs(c *Controller) []string {
	var dates []string
	for _, cell := range c.View().Cells {
		if cell.HasEvent {
			dates = append(dates, cell.Date[8:])
		}
	}
	return dates
}

// upcomingDates returns up to limit dates with songs, from today on, in
// calendar order regardless of the month on screen.
func upcomingDates(c *Controller, limit int) []string {
	catalog := c.State().Catalog
	dates := make([]string, 0, len(catalog))
	for date := range catalog {
		if catalog.HasSongs(date) {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)

	now := c.now()
	start, _ := slices.BinarySearch(dates, DateKey(now.Year(), now.Month(), now.Day()))
	dates = dates[start:]
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates
}
