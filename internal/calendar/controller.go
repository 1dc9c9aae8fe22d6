package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"

	"go.uber.org/zap"
)

// GotoAlert is shown to the user when Goto rejects its input.
const GotoAlert = "Invalid date! Use the mm/yyyy format."

var (
	ErrInvalidGoto = errors.New("invalid month, expected mm/yyyy")
	ErrInvalidDate = errors.New("invalid date, expected yyyy-mm-dd")
	ErrInvalidSlot = errors.New("invalid slot index")
)

const (
	mainSongLabel   = "Good morning song"
	dedicationLabel = "Special dedication"
	noSongsLabel    = "No songs"
)

//go:generate mockgen -source=controller.go -destination=mocks/mock_calendar.go -package=mock_calendar

type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) (models.Catalog, error)
}

// State is everything the calendar view is rendered from.
type State struct {
	Year         int
	Month        time.Month
	SelectedDate string
	SlotIndex    int
	Catalog      models.Catalog
}

type Tab struct {
	Index    int
	Label    string
	Active   bool
	Disabled bool
}

// Pane is the player side of the page for the selected date and slot.
type Pane struct {
	Day      string
	Date     string
	Title    string
	Lyrics   string
	Heading  string
	AudioURL string
	CoverURL string
	HasSong  bool
}

// Controller owns the calendar state and is the only thing that changes it.
type Controller struct {
	state   State
	fetcher CatalogFetcher
	player  *Player
	now     func() time.Time
	view    Month
	pane    Pane
}

func NewController(fetcher CatalogFetcher, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	today := now()
	return &Controller{
		state:   State{Year: today.Year(), Month: today.Month(), Catalog: models.Catalog{}},
		fetcher: fetcher,
		player:  NewPlayer(),
		now:     now,
	}
}

func (c *Controller) State() State    { return c.state }
func (c *Controller) View() Month     { return c.view }
func (c *Controller) Pane() Pane      { return c.pane }
func (c *Controller) Player() *Player { return c.player }

// Load fetches the catalog once and renders. A failed fetch leaves the
// calendar usable with no songs.
func (c *Controller) Load(ctx context.Context) Month {
	catalog, err := c.fetcher.FetchCatalog(ctx)
	if err != nil {
		utils.Logger.Warn("Controller.Load - catalog fetch failed, continuing without songs", zap.Error(err))
		catalog = nil
	}
	if catalog == nil {
		catalog = models.Catalog{}
	}
	c.state.Catalog = catalog
	return c.Render()
}

// Render rebuilds the month grid. When no cell of the shown month is
// selected and today is in it, today becomes the selection.
func (c *Controller) Render() Month {
	today := c.now()
	c.view = BuildMonth(c.state.Year, c.state.Month, today, c.state.SelectedDate, c.state.Catalog)

	if !c.view.HasSelection() {
		todayKey := DateKey(today.Year(), today.Month(), today.Day())
		if c.view.Contains(todayKey) {
			c.state.SelectedDate = todayKey
			c.state.SlotIndex = 0
			c.view.selectDate(todayKey)
			c.loadPane()
		}
	}
	return c.view
}

func (c *Controller) SelectDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	c.state.SelectedDate = date
	c.state.SlotIndex = 0
	c.view.selectDate(date)
	c.loadPane()
	return nil
}

// SelectSlot switches tab on the current date without refetching.
func (c *Controller) SelectSlot(index int) error {
	if index < 0 {
		return ErrInvalidSlot
	}
	c.state.SlotIndex = index
	c.loadPane()
	return nil
}

func (c *Controller) Prev() Month {
	c.state.Month--
	if c.state.Month < time.January {
		c.state.Month = time.December
		c.state.Year--
	}
	return c.Render()
}

func (c *Controller) Next() Month {
	c.state.Month++
	if c.state.Month > time.December {
		c.state.Month = time.January
		c.state.Year++
	}
	return c.Render()
}

func (c *Controller) Today() Month {
	today := c.now()
	c.state.Year, c.state.Month = today.Year(), today.Month()
	return c.Render()
}

// Goto jumps to an "mm/yyyy" month. On error the state is untouched and the
// caller should show GotoAlert.
func (c *Controller) Goto(input string) (Month, error) {
	parts := strings.Split(strings.TrimSpace(input), "/")
	if len(parts) != 2 {
		return c.view, ErrInvalidGoto
	}
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[0]))
	year, errYear := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errMonth != nil || errYear != nil || month < 1 || month > 12 || year <= 0 {
		return c.view, ErrInvalidGoto
	}
	c.state.Year, c.state.Month = year, time.Month(month)
	return c.Render(), nil
}

// Tabs lists one tab per song of the selected date.
func (c *Controller) Tabs() []Tab {
	entries := c.state.Catalog[c.state.SelectedDate]
	if !c.state.Catalog.HasSongs(c.state.SelectedDate) {
		return []Tab{{Index: -1, Label: noSongsLabel, Disabled: true}}
	}

	tabs := make([]Tab, 0, len(entries))
	for idx, entry := range entries {
		if entry == nil {
			continue
		}
		tabs = append(tabs, Tab{
			Index:  idx,
			Label:  TabLabel(idx, len(entries)),
			Active: idx == c.state.SlotIndex,
		})
	}
	return tabs
}

// TabLabel names the tab at idx among total songs of a day. A lone
// dedication is not numbered.
func TabLabel(idx, total int) string {
	switch {
	case idx == 0:
		return mainSongLabel
	case total == 2:
		return dedicationLabel
	default:
		return fmt.Sprintf("%s %d", dedicationLabel, idx+1)
	}
}

func (c *Controller) loadPane() {
	date := c.state.SelectedDate
	pane := Pane{}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		pane.Day = strconv.Itoa(t.Day())
		pane.Date = t.Format("02/01/2006")
	}

	entry := c.state.Catalog.Entry(date, c.state.SlotIndex)
	if entry == nil || entry.AudioURL == nil || *entry.AudioURL == "" {
		pane.Title = "No song for this date/slot."
		pane.Lyrics = "No lyrics."
		pane.Heading = "No song selected"
		c.pane = pane
		c.player.Load("")
		return
	}

	pane.HasSong = true
	pane.AudioURL = *entry.AudioURL
	pane.CoverURL = valueOr(entry.CoverURL, "")
	pane.Title = valueOr(entry.Title, "Unknown title")
	pane.Lyrics = valueOr(entry.Lyrics, "Lyrics unavailable.")
	pane.Heading = "Playing: " + valueOr(entry.Title, "-")
	c.pane = pane
	c.player.Load(pane.AudioURL)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
