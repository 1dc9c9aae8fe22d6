package storage

import (
	"context"
	"errors"

	"songcalendar/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Wrap(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mock_storage

type SongStorage interface {
	// ListAll returns every row ordered by date, then slot.
	ListAll(ctx context.Context) ([]models.Song, error)
	// ListAllDescending returns every row ordered by date descending, then slot.
	ListAllDescending(ctx context.Context) ([]models.Song, error)
	// MaxSlot returns the highest slot used on date; ok is false when the date is empty.
	MaxSlot(ctx context.Context, date string) (slot int, ok bool, err error)
	// Upsert inserts song or, when (Date, Slot) already exists, replaces its metadata.
	Upsert(ctx context.Context, song *models.Song) error
	// DeleteByID removes a row. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int) error
}

type UserStorage interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	CreateIfMissing(ctx context.Context, user *models.User) (bool, error)
}
