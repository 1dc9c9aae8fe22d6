package login

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"songcalendar/internal/api/handlers"
	"songcalendar/internal/auth"
	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/lib/response"
	"songcalendar/internal/models"
	"songcalendar/internal/service"
)

type AuthHandlers struct {
	authService *service.AuthService
	sessions    *auth.SessionManager
}

func NewAuthHandlers(authService *service.AuthService, sessions *auth.SessionManager) *AuthHandlers {
	return &AuthHandlers{authService: authService, sessions: sessions}
}

// @Summary Log in as admin
// @Description Checks the credentials and sets the session cookie.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessBody
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/login [post]
func (h *AuthHandlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("LoginHandler called")

	req, err := decodeLogin(r)
	if err != nil {
		utils.Logger.Warn("LoginHandler - invalid request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Login(r.Context(), req)
	if err != nil {
		utils.Logger.Warn("LoginHandler - authService.Login failed", zap.Error(err))
		handlers.RespondError(w, err, "Internal error")
		return
	}

	if err := h.sessions.Issue(w, r, user); err != nil {
		utils.Logger.Error("LoginHandler - sessions.Issue failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	response.Success(w)
}

// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} response.SuccessBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/logout [post]
func (h *AuthHandlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("LogoutHandler called")
	h.sessions.Clear(w, r)
	response.Success(w)
}

func decodeLogin(r *http.Request) (*models.LoginRequest, error) {
	if handlers.IsForm(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		return &models.LoginRequest{Username: r.FormValue("username"), Password: r.FormValue("password")}, nil
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
