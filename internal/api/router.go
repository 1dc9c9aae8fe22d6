package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"songcalendar/internal/api/handlers/login"
	"songcalendar/internal/api/handlers/songs"
	"songcalendar/internal/api/handlers/upload"
	"songcalendar/internal/audio"
	"songcalendar/internal/auth"
	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/service"
	_ "songcalendar/swagger" // generated swagger docs
)

type Dependencies struct {
	Songs    *service.SongService
	Auth     *service.AuthService
	Sessions *auth.SessionManager
	Audio    audio.Store

	// UploadDir is served read-only under UploadURLPrefix.
	UploadDir       string
	UploadURLPrefix string
	MaxUploadSize   int64
}

func NewRouter(deps Dependencies) *mux.Router {
	songHandlers := songs.NewSongHandlers(deps.Songs)
	loginHandlers := login.NewAuthHandlers(deps.Auth, deps.Sessions)
	uploadHandlers := upload.NewUploadHandlers(deps.Audio, deps.MaxUploadSize)

	router := mux.NewRouter()
	router.Use(utils.RequestLogger)
	router.Use(deps.Sessions.Verifier())

	router.HandleFunc("/health", songHandlers.HealthCheckHandler).Methods("GET")

	router.HandleFunc("/api/login", loginHandlers.LoginHandler).Methods("POST")
	router.Handle("/api/logout", auth.RequireSession(http.HandlerFunc(loginHandlers.LogoutHandler))).Methods("POST")
	router.Handle("/api/upload", auth.RequireSession(http.HandlerFunc(uploadHandlers.UploadHandler))).Methods("POST")

	router.HandleFunc("/api/musicas", songHandlers.GetCatalogHandler).Methods("GET")
	router.Handle("/api/musicas", auth.RequireSession(http.HandlerFunc(songHandlers.SaveSongHandler))).Methods("POST")
	router.Handle("/api/musicas/{id}", auth.RequireSession(http.HandlerFunc(songHandlers.DeleteSongHandler))).Methods("DELETE")
	router.Handle("/api/admin/musicas", auth.RequireSession(http.HandlerFunc(songHandlers.ListSongsHandler))).Methods("GET")

	if deps.UploadDir != "" {
		prefix := strings.TrimSuffix(deps.UploadURLPrefix, "/") + "/"
		router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(filesOnly{fs: http.Dir(deps.UploadDir)}))).Methods("GET", "HEAD")
	}

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return router
}
