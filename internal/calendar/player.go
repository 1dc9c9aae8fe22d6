package calendar

import (
	"fmt"
	"math"
)

// Player mirrors the audio element behind the pane: which button shows,
// where playback is and how far the progress bar is filled.
type Player struct {
	source   string
	duration float64
	current  float64
	playing  bool
}

func NewPlayer() *Player {
	return &Player{}
}

// Load swaps the source and rewinds. An empty source clears the player.
func (p *Player) Load(source string) {
	*p = Player{source: source}
}

func (p *Player) Source() string { return p.source }

// Play starts playback; it does nothing without a source.
func (p *Player) Play() bool {
	if p.source == "" {
		return false
	}
	p.playing = true
	return true
}

func (p *Player) Pause() {
	p.playing = false
}

func (p *Player) Playing() bool      { return p.playing }
func (p *Player) PlayVisible() bool  { return !p.playing }
func (p *Player) PauseVisible() bool { return p.playing }

func (p *Player) DurationLoaded(seconds float64) {
	p.duration = finite(seconds)
}

func (p *Player) TimeUpdate(seconds float64) {
	p.current = p.clamp(finite(seconds))
}

// SeekAt handles a click x pixels into a bar width pixels wide.
func (p *Player) SeekAt(x, width float64) bool {
	if p.duration == 0 || width <= 0 {
		return false
	}
	p.current = p.clamp(x / width * p.duration)
	return true
}

func (p *Player) SeekPercent(percent float64) bool {
	if p.duration == 0 {
		return false
	}
	p.current = p.clamp(finite(percent) / 100 * p.duration)
	return true
}

// Ended resets the controls once the media reaches its end.
func (p *Player) Ended() {
	p.playing = false
	p.current = 0
}

// Progress is the filled part of the bar, 0 to 100.
func (p *Player) Progress() float64 {
	if p.duration == 0 {
		return 0
	}
	return math.Min(math.Max(p.current/p.duration*100, 0), 100)
}

func (p *Player) Elapsed() string { return FormatTime(p.current) }
func (p *Player) Total() string   { return FormatTime(p.duration) }

func (p *Player) clamp(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	if p.duration > 0 && seconds > p.duration {
		return p.duration
	}
	return seconds
}

// FormatTime renders seconds as m:ss, or 00:00 when there is nothing to show.
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "00:00"
	}
	return fmt.Sprintf("%d:%02d", int(seconds/60), int(math.Mod(seconds, 60)))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
