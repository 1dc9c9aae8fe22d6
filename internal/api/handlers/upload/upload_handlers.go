package upload

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"songcalendar/internal/audio"
	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/lib/response"
	"songcalendar/internal/models"
)

const (
	fieldName = "audio"
	// room for the multipart envelope around the file itself
	multipartOverhead int64 = 1 << 20
	memoryLimit       int64 = 32 << 20
)

type UploadHandlers struct {
	store   audio.Store
	maxSize int64
}

func NewUploadHandlers(store audio.Store, maxSize int64) *UploadHandlers {
	if maxSize <= 0 {
		maxSize = audio.MaxUploadSize
	}
	return &UploadHandlers{store: store, maxSize: maxSize}
}

// @Summary Upload an audio file (admin)
// @Description Accepts one mp3, m4a or wav file in the "audio" field and returns the URL it is served from.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio file"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /api/upload [post]
func (h *UploadHandlers) UploadHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("UploadHandler called")
	tooLarge := fmt.Sprintf("File too large (max %d MB)", h.maxSize>>20)

	if r.ContentLength > h.maxSize+multipartOverhead {
		response.Error(w, http.StatusBadRequest, tooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		utils.Logger.Warn("UploadHandler - invalid multipart body", zap.Error(err))
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusBadRequest, tooLarge)
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(fieldName)
	if err != nil {
		utils.Logger.Warn("UploadHandler - file not sent", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "File not sent")
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		utils.Logger.Warn("UploadHandler - file too large", zap.Int64("size", header.Size))
		response.Error(w, http.StatusBadRequest, tooLarge)
		return
	}
	if !audio.IsAudio(header.Filename, header.Header.Get("Content-Type")) {
		utils.Logger.Warn("UploadHandler - not an audio file", zap.String("filename", header.Filename))
		response.Error(w, http.StatusBadRequest, "Only audio files are allowed")
		return
	}

	url, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		utils.Logger.Error("UploadHandler - store.Save failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	response.JSON(w, http.StatusOK, models.UploadResponse{Success: true, URL: url})
	utils.Logger.Info("UploadHandler - audio uploaded", zap.String("url", url))
}
