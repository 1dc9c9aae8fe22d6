package service_test

import (
	"context"
	"errors"
	"testing"

	"songcalendar/internal/models"
	"songcalendar/internal/service"
	"songcalendar/internal/storage"
	mock_storage "songcalendar/internal/storage/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{ID: 1, Username: "admin", PasswordHash: string(hash)}

	testCases := []struct {
		name        string
		request     *models.LoginRequest
		mockUsersFn func(m *mock_storage.MockUserStorage)
		expectedErr func(t *testing.T, err error)
	}{
		{
			name:    "Valid credentials",
			request: &models.LoginRequest{Username: "admin", Password: "secret"},
			mockUsersFn: func(m *mock_storage.MockUserStorage) {
				m.EXPECT().GetByUsername(gomock.Any(), "admin").Return(admin, nil)
			},
		},
		{
			name:    "Wrong password",
			request: &models.LoginRequest{Username: "admin", Password: "nope"},
			mockUsersFn: func(m *mock_storage.MockUserStorage) {
				m.EXPECT().GetByUsername(gomock.Any(), "admin").Return(admin, nil)
			},
			expectedErr: func(t *testing.T, err error) { assert.ErrorIs(t, err, service.ErrInvalidCredentials) },
		},
		{
			name:    "Unknown user",
			request: &models.LoginRequest{Username: "ghost", Password: "secret"},
			mockUsersFn: func(m *mock_storage.MockUserStorage) {
				m.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, storage.ErrUserNotFound)
			},
			expectedErr: func(t *testing.T, err error) { assert.ErrorIs(t, err, service.ErrInvalidCredentials) },
		},
		{
			name:        "Missing password",
			request:     &models.LoginRequest{Username: "admin"},
			mockUsersFn: func(m *mock_storage.MockUserStorage) {},
			expectedErr: func(t *testing.T, err error) {
				var valErr *service.ValidationError
				assert.ErrorAs(t, err, &valErr)
			},
		},
		{
			name:    "Storage error",
			request: &models.LoginRequest{Username: "admin", Password: "secret"},
			mockUsersFn: func(m *mock_storage.MockUserStorage) {
				m.EXPECT().GetByUsername(gomock.Any(), "admin").Return(nil, storage.Wrap("op", errors.New("db down")))
			},
			expectedErr: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUsers := mock_storage.NewMockUserStorage(ctrl)
			tc.mockUsersFn(mockUsers)

			user, err := service.NewAuthService(mockUsers).Login(context.Background(), tc.request)
			if tc.expectedErr != nil {
				tc.expectedErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, admin.ID, user.ID)
		})
	}
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mock_storage.NewMockUserStorage(ctrl)
	mockUsers.EXPECT().CreateIfMissing(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) (bool, error) {
			assert.Equal(t, "admin", user.Username)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("F1003J")))
			return true, nil
		})

	created, err := service.NewAuthService(mockUsers).WithBcryptCost(bcrypt.MinCost).SeedAdmin(context.Background(), "admin", "F1003J")
	require.NoError(t, err)
	assert.True(t, created)
}
