// internal/api/handlers/songs/songs_handlers.go
package songs

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"songcalendar/internal/api/handlers"
	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/lib/response"
	"songcalendar/internal/models"
	"songcalendar/internal/service"
)

type SongHandlers struct {
	songService *service.SongService
}

func NewSongHandlers(songService *service.SongService) *SongHandlers {
	return &SongHandlers{
		songService: songService,
	}
}

// @Summary Get the song catalog
// @Description Songs grouped by date (YYYY-MM-DD). Inside a date, the song at slot n is at index n-1; skipped slots are null.
// @Tags songs
// @Produce json
// @Success 200 {object} models.Catalog
// @Failure 500 {object} response.ErrorBody
// @Router /api/musicas [get]
func (h *SongHandlers) GetCatalogHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("GetCatalogHandler called")

	catalog, err := h.songService.GetCatalog(r.Context())
	if err != nil {
		utils.Logger.Error("GetCatalogHandler - songService.GetCatalog failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to get songs")
		return
	}

	response.JSON(w, http.StatusOK, catalog)
	utils.Logger.Debug("GetCatalogHandler - catalog retrieved", zap.Int("dates", len(catalog)))
}

// @Summary List every song (admin)
// @Description Flat list of rows ordered by date descending, then slot.
// @Tags admin
// @Produce json
// @Success 200 {array} models.Song
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/admin/musicas [get]
func (h *SongHandlers) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("ListSongsHandler called")

	songs, err := h.songService.ListSongs(r.Context())
	if err != nil {
		utils.Logger.Error("ListSongsHandler - songService.ListSongs failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Failed to list songs")
		return
	}

	response.JSON(w, http.StatusOK, songs)
	utils.Logger.Debug("ListSongsHandler - songs retrieved", zap.Int("count", len(songs)))
}

// @Summary Create or update a song (admin)
// @Description Stores the song for (data, posicao). Without posicao the song goes after the last one of that date.
// @Tags admin
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body models.SaveSongRequest true "Song to store"
// @Success 200 {object} models.SaveSongResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/musicas [post]
func (h *SongHandlers) SaveSongHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("SaveSongHandler called")
	req, err := decodeSaveSong(r)
	if err != nil {
		utils.Logger.Warn("SaveSongHandler - invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slot, err := h.songService.SaveSong(r.Context(), req)
	if err != nil {
		utils.Logger.Warn("SaveSongHandler - songService.SaveSong failed", zap.Error(err))
		handlers.RespondError(w, err, "Failed to save song")
		return
	}

	response.JSON(w, http.StatusOK, models.SaveSongResponse{Success: true, Slot: slot})
	utils.Logger.Info("SaveSongHandler - song saved", zap.String("date", req.Date), zap.Int("slot", slot))
}

// @Summary Delete a song by ID (admin)
// @Description Removing an id that does not exist still succeeds.
// @Tags admin
// @Produce json
// @Param id path int true "Song ID"
// @Success 200 {object} response.SuccessBody
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/musicas/{id} [delete]
func (h *SongHandlers) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("DeleteSongHandler called")
	vars := mux.Vars(r)
	idStr := vars["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.Logger.Warn("DeleteSongHandler - invalid song ID", zap.Error(err), zap.String("id", idStr))
		response.Error(w, http.StatusBadRequest, "Invalid song ID")
		return
	}

	if err := h.songService.DeleteSong(r.Context(), id); err != nil {
		utils.Logger.Error("DeleteSongHandler - songService.DeleteSong failed", zap.Error(err), zap.Int("id", id))
		response.Error(w, http.StatusInternalServerError, "Failed to delete song")
		return
	}

	response.Success(w)
	utils.Logger.Info("DeleteSongHandler - song deleted", zap.Int("song_id", id))
}

func (h *SongHandlers) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func decodeSaveSong(r *http.Request) (*models.SaveSongRequest, error) {
	if handlers.IsForm(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		slot := r.FormValue("posicao")
		return &models.SaveSongRequest{
			Date:     r.FormValue("data"),
			Slot:     models.SlotParam{Raw: slot, Set: slot != ""},
			Title:    r.FormValue("titulo"),
			AudioURL: r.FormValue("audio"),
			Lyrics:   r.FormValue("letra"),
			CoverURL: r.FormValue("capa"),
		}, nil
	}

	var req models.SaveSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
