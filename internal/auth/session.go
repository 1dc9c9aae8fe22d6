package auth

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/lib/response"
	"songcalendar/internal/models"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"go.uber.org/zap"
)

const (
	CookieName     = "jwt"
	sessionIssuer  = "songcalendar"
	usernameClaim  = "username"
	DefaultSession = 24 * time.Hour
)

// SessionManager issues and checks the signed admin session cookie.
type SessionManager struct {
	jwtAuth *jwtauth.JWTAuth
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSession
	}
	return &SessionManager{
		jwtAuth: jwtauth.New("HS256", []byte(secret), nil),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue signs a session for user and stores it in the response cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, r *http.Request, user *models.User) error {
	now := m.now()
	expiration := now.Add(m.ttl)

	_, signed, err := m.jwtAuth.Encode(map[string]interface{}{
		jwt.IssuerKey:     sessionIssuer,
		jwt.SubjectKey:    strconv.Itoa(user.ID),
		jwt.IssuedAtKey:   now.Unix(),
		jwt.ExpirationKey: expiration,
		usernameClaim:     user.Username,
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Expires:  expiration,
		Secure:   r.TLS != nil,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   r.TLS != nil,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// Verifier decodes the session cookie, if any, into the request context.
func (m *SessionManager) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verify(m.jwtAuth, jwtauth.TokenFromCookie)
}

// RequireSession rejects requests without a valid session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			utils.Logger.Debug("RequireSession - rejected", zap.String("path", r.URL.Path))
			response.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the admin bound to the verified session.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return nil, false
	}
	if iss, _ := claims[jwt.IssuerKey].(string); iss != sessionIssuer {
		return nil, false
	}
	sub, _ := claims[jwt.SubjectKey].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, false
	}
	username, _ := claims[usernameClaim].(string)
	return &models.User{ID: id, Username: username}, true
}
