package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"
	"songcalendar/internal/storage"

	"go.uber.org/zap"
)

var saveSongMessages = map[string]string{
	"data.required": "Field data is required (YYYY-MM-DD)",
	"data.datetime": "Field data must be a date in YYYY-MM-DD format",
}

type SongService struct {
	storage storage.SongStorage
}

func NewSongService(storage storage.SongStorage) *SongService {
	return &SongService{storage: storage}
}

// GetCatalog groups every song by date. Within a date, slot n sits at index n-1.
func (s *SongService) GetCatalog(ctx context.Context) (models.Catalog, error) {
	utils.Logger.Debug("SongService.GetCatalog")

	songs, err := s.storage.ListAll(ctx)
	if err != nil {
		utils.Logger.Error("SongService.GetCatalog - storage.ListAll failed", zap.Error(err))
		return nil, fmt.Errorf("SongService.GetCatalog - storage.ListAll failed: %w", err)
	}
	return buildCatalog(songs), nil
}

func buildCatalog(songs []models.Song) models.Catalog {
	catalog := make(models.Catalog)
	for _, song := range songs {
		if song.Slot < 1 || song.Slot > models.SlotLimit {
			utils.Logger.Warn("SongService.GetCatalog - skipping row with invalid slot", zap.Int("id", song.ID), zap.Int("slot", song.Slot))
			continue
		}
		entries := catalog[song.Date]
		for len(entries) < song.Slot {
			entries = append(entries, nil)
		}
		entries[song.Slot-1] = &models.CatalogEntry{
			ID:       song.ID,
			Title:    song.Title,
			AudioURL: song.AudioURL,
			Lyrics:   song.Lyrics,
			CoverURL: song.CoverURL,
			Slot:     song.Slot,
		}
		catalog[song.Date] = entries
	}
	return catalog
}

func (s *SongService) ListSongs(ctx context.Context) ([]models.Song, error) {
	utils.Logger.Debug("SongService.ListSongs")

	songs, err := s.storage.ListAllDescending(ctx)
	if err != nil {
		utils.Logger.Error("SongService.ListSongs - storage.ListAllDescending failed", zap.Error(err))
		return nil, fmt.Errorf("SongService.ListSongs - storage.ListAllDescending failed: %w", err)
	}
	return songs, nil
}

// SaveSong creates or replaces the song at (req.Date, slot) and returns the
// slot used. Without an explicit slot the song goes after the last one of the day.
func (s *SongService) SaveSong(ctx context.Context, req *models.SaveSongRequest) (int, error) {
	utils.Logger.Debug("SongService.SaveSong", zap.String("date", req.Date), zap.String("slot", req.Slot.Raw))

	if err := validateRequest(req, saveSongMessages); err != nil {
		return 0, err
	}

	slot, err := s.resolveSlot(ctx, req)
	if err != nil {
		return 0, err
	}

	song := &models.Song{
		Date:     req.Date,
		Slot:     slot,
		Title:    nullable(req.Title),
		AudioURL: nullable(req.AudioURL),
		Lyrics:   nullable(req.Lyrics),
		CoverURL: nullable(req.CoverURL),
	}
	if err := s.storage.Upsert(ctx, song); err != nil {
		utils.Logger.Error("SongService.SaveSong - storage.Upsert failed", zap.Error(err), zap.String("date", req.Date), zap.Int("slot", slot))
		return 0, fmt.Errorf("SongService.SaveSong - storage.Upsert failed: %w", err)
	}

	utils.Logger.Info("SongService.SaveSong - song saved", zap.Int("song_id", song.ID), zap.String("date", song.Date), zap.Int("slot", slot))
	return slot, nil
}

func (s *SongService) resolveSlot(ctx context.Context, req *models.SaveSongRequest) (int, error) {
	if req.Slot.Set {
		slot, err := strconv.Atoi(strings.TrimSpace(req.Slot.Raw))
		if err != nil || slot < 1 || slot > models.SlotLimit {
			return 0, newValidationError("Invalid posicao")
		}
		return slot, nil
	}

	max, ok, err := s.storage.MaxSlot(ctx, req.Date)
	if err != nil {
		utils.Logger.Error("SongService.SaveSong - storage.MaxSlot failed", zap.Error(err), zap.String("date", req.Date))
		return 0, fmt.Errorf("SongService.SaveSong - storage.MaxSlot failed: %w", err)
	}
	if !ok {
		return 1, nil
	}
	if max >= models.SlotLimit {
		return 0, newValidationError("No free posicao left for this date")
	}
	return max + 1, nil
}

func (s *SongService) DeleteSong(ctx context.Context, id int) error {
	utils.Logger.Debug("SongService.DeleteSong", zap.Int("id", id))

	if err := s.storage.DeleteByID(ctx, id); err != nil {
		utils.Logger.Error("SongService.DeleteSong - storage.DeleteByID failed", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("SongService.DeleteSong - storage.DeleteByID failed: %w", err)
	}
	utils.Logger.Info("SongService.DeleteSong - song deleted", zap.Int("song_id", id))
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
