package songs_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"songcalendar/internal/api/handlers/songs"
	"songcalendar/internal/models"
	"songcalendar/internal/service"
	"songcalendar/internal/storage"
	mock_storage "songcalendar/internal/storage/mocks"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSaveSongHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		requestBody    string
		mockStorageFn  func(s *mock_storage.MockSongStorage)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "First song of a date",
			requestBody: `{"data": "2024-03-10", "titulo": "A"}`,
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().MaxSlot(gomock.Any(), "2024-03-10").Return(0, false, nil)
				s.EXPECT().Upsert(gomock.Any(), &models.Song{Date: "2024-03-10", Slot: 1, Title: strPtr("A")}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"posicao":1}`,
		},
		{
			name:        "Appends after the last slot",
			requestBody: `{"data": "2024-03-10", "titulo": "B", "posicao": null}`,
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().MaxSlot(gomock.Any(), "2024-03-10").Return(3, true, nil)
				s.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"posicao":4}`,
		},
		{
			name:        "Explicit slot as string",
			requestBody: `{"data": "2024-03-10", "posicao": "2", "audio": "/uploads/b.mp3"}`,
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().Upsert(gomock.Any(), &models.Song{Date: "2024-03-10", Slot: 2, AudioURL: strPtr("/uploads/b.mp3")}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"posicao":2}`,
		},
		{
			name:           "Invalid request body",
			requestBody:    `invalid json`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:           "Missing date",
			requestBody:    `{"titulo": "A"}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Field data is required (YYYY-MM-DD)"}`,
		},
		{
			name:           "Malformed date",
			requestBody:    `{"data": "10/03/2024"}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Field data must be a date in YYYY-MM-DD format"}`,
		},
		{
			name:           "Slot zero",
			requestBody:    `{"data": "2024-03-10", "posicao": 0}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid posicao"}`,
		},
		{
			name:           "Slot too large",
			requestBody:    `{"data": "2024-03-10", "posicao": 3000000}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid posicao"}`,
		},
		{
			name:           "Slot beyond int range",
			requestBody:    `{"data": "2024-03-10", "posicao": "9223372036854775807"}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid posicao"}`,
		},
		{
			name:           "Slot not a number",
			requestBody:    `{"data": "2024-03-10", "posicao": "abc"}`,
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid posicao"}`,
		},
		{
			name:        "Storage error",
			requestBody: `{"data": "2024-03-10", "posicao": 1}`,
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(storage.Wrap("Upsert", errors.New("disk full")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to save song"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := mock_storage.NewMockSongStorage(ctrl)
			tc.mockStorageFn(mockStorage)

			handler := songs.NewSongHandlers(service.NewSongService(mockStorage))

			req := httptest.NewRequest("POST", "/api/musicas", bytes.NewBufferString(tc.requestBody))
			w := httptest.NewRecorder()

			handler.SaveSongHandler(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestSaveSongHandler_Form(t *testing.T) {
	testCases := []struct {
		name           string
		form           url.Values
		mockStorageFn  func(s *mock_storage.MockSongStorage)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Form with slot",
			form: url.Values{"data": {"2024-03-10"}, "posicao": {"2"}, "titulo": {"B"}, "letra": {"la"}},
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().Upsert(gomock.Any(), &models.Song{Date: "2024-03-10", Slot: 2, Title: strPtr("B"), Lyrics: strPtr("la")}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"posicao":2}`,
		},
		{
			name: "Form with empty slot appends",
			form: url.Values{"data": {"2024-03-10"}, "posicao": {""}, "audio": {"/uploads/a.mp3"}},
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().MaxSlot(gomock.Any(), "2024-03-10").Return(1, true, nil)
				s.EXPECT().Upsert(gomock.Any(), &models.Song{Date: "2024-03-10", Slot: 2, AudioURL: strPtr("/uploads/a.mp3")}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"posicao":2}`,
		},
		{
			name:           "Form slot too large",
			form:           url.Values{"data": {"2024-03-10"}, "posicao": {"20240310"}},
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid posicao"}`,
		},
		{
			name:           "Form without date",
			form:           url.Values{"titulo": {"A"}},
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Field data is required (YYYY-MM-DD)"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := mock_storage.NewMockSongStorage(ctrl)
			tc.mockStorageFn(mockStorage)

			handler := songs.NewSongHandlers(service.NewSongService(mockStorage))

			req := httptest.NewRequest("POST", "/api/musicas", strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.SaveSongHandler(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestGetCatalogHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		mockStorageFn  func(s *mock_storage.MockSongStorage)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Empty catalog",
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().ListAll(gomock.Any()).Return([]models.Song{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
		},
		{
			name: "Skipped slot is null",
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().ListAll(gomock.Any()).Return([]models.Song{
					{ID: 1, Date: "2024-03-10", Slot: 1, Title: strPtr("A")},
					{ID: 2, Date: "2024-03-10", Slot: 3, Title: strPtr("C")},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"2024-03-10":[
				{"id":1,"titulo":"A","audio":null,"letra":null,"capa":null,"posicao":1},
				null,
				{"id":2,"titulo":"C","audio":null,"letra":null,"capa":null,"posicao":3}
			]}`,
		},
		{
			name: "Storage error",
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to get songs"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := mock_storage.NewMockSongStorage(ctrl)
			tc.mockStorageFn(mockStorage)

			handler := songs.NewSongHandlers(service.NewSongService(mockStorage))

			req := httptest.NewRequest("GET", "/api/musicas", nil)
			w := httptest.NewRecorder()

			handler.GetCatalogHandler(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestListSongsHandler_Unit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := mock_storage.NewMockSongStorage(ctrl)
	mockStorage.EXPECT().ListAllDescending(gomock.Any()).Return([]models.Song{
		{ID: 2, Date: "2024-03-11", Slot: 1, Title: strPtr("B")},
		{ID: 1, Date: "2024-03-10", Slot: 1, AudioURL: strPtr("/uploads/a.mp3")},
	}, nil)

	handler := songs.NewSongHandlers(service.NewSongService(mockStorage))
	req := httptest.NewRequest("GET", "/api/admin/musicas", nil)
	w := httptest.NewRecorder()

	handler.ListSongsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":2,"data":"2024-03-11","posicao":1,"titulo":"B","audio":null,"letra":null,"capa":null},
		{"id":1,"data":"2024-03-10","posicao":1,"titulo":null,"audio":"/uploads/a.mp3","letra":null,"capa":null}
	]`, w.Body.String())
}

func TestDeleteSongHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		songID         string
		mockStorageFn  func(s *mock_storage.MockSongStorage)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Valid request",
			songID: "1",
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().DeleteByID(gomock.Any(), 1).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
		},
		{
			name:           "Invalid song ID",
			songID:         "invalid",
			mockStorageFn:  func(s *mock_storage.MockSongStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid song ID"}`,
		},
		{
			name:   "Storage error",
			songID: "1",
			mockStorageFn: func(s *mock_storage.MockSongStorage) {
				s.EXPECT().DeleteByID(gomock.Any(), 1).Return(errors.New("storage error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to delete song"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := mock_storage.NewMockSongStorage(ctrl)
			tc.mockStorageFn(mockStorage)

			handler := songs.NewSongHandlers(service.NewSongService(mockStorage))
			req := httptest.NewRequest("DELETE", "/api/musicas/"+tc.songID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tc.songID})
			w := httptest.NewRecorder()

			handler.DeleteSongHandler(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestHealthCheckHandler_Unit(t *testing.T) {
	handler := songs.NewSongHandlers(nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	handler.HealthCheckHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
