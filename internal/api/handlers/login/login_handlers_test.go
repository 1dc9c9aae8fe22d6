package login_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"songcalendar/internal/api/handlers/login"
	"songcalendar/internal/auth"
	"songcalendar/internal/models"
	"songcalendar/internal/service"
	"songcalendar/internal/storage"
	mock_storage "songcalendar/internal/storage/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func adminUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("F1003J"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: 1, Username: "admin", PasswordHash: string(hash)}
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginHandler_Unit(t *testing.T) {
	testCases := []struct {
		name           string
		contentType    string
		requestBody    string
		mockStorageFn  func(t *testing.T, s *mock_storage.MockUserStorage)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "Valid JSON credentials",
			contentType: "application/json",
			requestBody: `{"username": "admin", "password": "F1003J"}`,
			mockStorageFn: func(t *testing.T, s *mock_storage.MockUserStorage) {
				s.EXPECT().GetByUsername(gomock.Any(), "admin").Return(adminUser(t), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
			expectCookie:   true,
		},
		{
			name:        "Valid form credentials",
			contentType: "application/x-www-form-urlencoded",
			requestBody: url.Values{"username": {"admin"}, "password": {"F1003J"}}.Encode(),
			mockStorageFn: func(t *testing.T, s *mock_storage.MockUserStorage) {
				s.EXPECT().GetByUsername(gomock.Any(), "admin").Return(adminUser(t), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
			expectCookie:   true,
		},
		{
			name:        "Wrong password",
			contentType: "application/json",
			requestBody: `{"username": "admin", "password": "nope"}`,
			mockStorageFn: func(t *testing.T, s *mock_storage.MockUserStorage) {
				s.EXPECT().GetByUsername(gomock.Any(), "admin").Return(adminUser(t), nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Invalid username or password"}`,
		},
		{
			name:        "Unknown user",
			contentType: "application/json",
			requestBody: `{"username": "ghost", "password": "F1003J"}`,
			mockStorageFn: func(t *testing.T, s *mock_storage.MockUserStorage) {
				s.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Invalid username or password"}`,
		},
		{
			name:           "Missing password",
			contentType:    "application/json",
			requestBody:    `{"username": "admin"}`,
			mockStorageFn:  func(t *testing.T, s *mock_storage.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Username and password are required"}`,
		},
		{
			name:           "Invalid request body",
			contentType:    "application/json",
			requestBody:    `{"username":`,
			mockStorageFn:  func(t *testing.T, s *mock_storage.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:        "Storage error",
			contentType: "application/json",
			requestBody: `{"username": "admin", "password": "F1003J"}`,
			mockStorageFn: func(t *testing.T, s *mock_storage.MockUserStorage) {
				s.EXPECT().GetByUsername(gomock.Any(), "admin").Return(nil, storage.Wrap("GetByUsername", errors.New("timeout")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal error"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := mock_storage.NewMockUserStorage(ctrl)
			tc.mockStorageFn(t, mockStorage)

			handler := login.NewAuthHandlers(
				service.NewAuthService(mockStorage),
				auth.NewSessionManager("test-secret", time.Hour),
			)

			req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(tc.requestBody))
			req.Header.Set("Content-Type", tc.contentType)
			w := httptest.NewRecorder()

			handler.LoginHandler(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())

			cookie := sessionCookie(w.Result())
			if tc.expectCookie {
				require.NotNil(t, cookie)
				assert.True(t, cookie.HttpOnly)
				assert.NotEmpty(t, cookie.Value)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestLogoutHandler_Unit(t *testing.T) {
	handler := login.NewAuthHandlers(nil, auth.NewSessionManager("test-secret", time.Hour))

	req := httptest.NewRequest("POST", "/api/logout", strings.NewReader(""))
	w := httptest.NewRecorder()

	handler.LogoutHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	cookie := sessionCookie(w.Result())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
