package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// SlotLimit is the highest slot a date can hold.
const SlotLimit = 100

// Song is one row of the musicas table: the song stored for a date at a slot.
type Song struct {
	ID       int     `json:"id"`
	Date     string  `json:"data"`
	Slot     int     `json:"posicao"`
	Title    *string `json:"titulo"`
	AudioURL *string `json:"audio"`
	Lyrics   *string `json:"letra"`
	CoverURL *string `json:"capa"`
}

// CatalogEntry is the public projection of a Song inside a Catalog.
type CatalogEntry struct {
	ID       int     `json:"id"`
	Title    *string `json:"titulo"`
	AudioURL *string `json:"audio"`
	Lyrics   *string `json:"letra"`
	CoverURL *string `json:"capa"`
	Slot     int     `json:"posicao"`
}

// Catalog maps a YYYY-MM-DD date to its songs, indexed by slot-1.
// Skipped slots are nil entries.
type Catalog map[string][]*CatalogEntry

// Entry returns the entry at index for date, or nil.
func (c Catalog) Entry(date string, index int) *CatalogEntry {
	entries := c[date]
	if index < 0 || index >= len(entries) {
		return nil
	}
	return entries[index]
}

// HasSongs reports whether date has at least one entry.
func (c Catalog) HasSongs(date string) bool {
	for _, e := range c[date] {
		if e != nil {
			return true
		}
	}
	return false
}

// SaveSongRequest is the body of POST /api/musicas.
type SaveSongRequest struct {
	Date     string    `json:"data" validate:"required,datetime=2006-01-02"`
	Slot     SlotParam `json:"posicao"`
	Title    string    `json:"titulo"`
	AudioURL string    `json:"audio"`
	Lyrics   string    `json:"letra"`
	CoverURL string    `json:"capa"`
}

type SaveSongResponse struct {
	Success bool `json:"success"`
	Slot    int  `json:"posicao"`
}

// SlotParam holds the optional posicao field. It accepts a JSON number or a
// string; null and "" leave it unset.
type SlotParam struct {
	Raw string
	Set bool
}

func NewSlotParam(slot int) SlotParam {
	return SlotParam{Raw: strconv.Itoa(slot), Set: true}
}

func (p *SlotParam) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = SlotParam{}
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	if raw == "" {
		*p = SlotParam{}
		return nil
	}
	*p = SlotParam{Raw: raw, Set: true}
	return nil
}

func (p SlotParam) MarshalJSON() ([]byte, error) {
	if !p.Set {
		return []byte("null"), nil
	}
	return json.Marshal(p.Raw)
}
