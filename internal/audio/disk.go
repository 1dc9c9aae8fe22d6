package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"songcalendar/internal/lib/logger/utils"

	"go.uber.org/zap"
)

const maxNameAttempts = 100

// DiskStore writes uploads into one directory served under URLPrefix.
type DiskStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("DiskStore - creating upload directory failed: %w", err)
	}
	return &DiskStore{dir: dir, urlPrefix: urlPrefix, now: time.Now}, nil
}

func (s *DiskStore) Dir() string {
	return s.dir
}

// Save stores r as "<unix-millis>_<sanitized name>" and returns its public URL.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	safeName := SanitizeName(originalName)
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)

	var (
		f    *os.File
		name string
		err  error
	)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name = stamp + "_" + safeName
		if attempt > 0 {
			name = stamp + "-" + strconv.Itoa(attempt) + "_" + safeName
		}
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil || !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		utils.Logger.Error("DiskStore.Save - create failed", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("DiskStore.Save - create failed: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		utils.Logger.Error("DiskStore.Save - write failed", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("DiskStore.Save - write failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("DiskStore.Save - close failed: %w", err)
	}

	url := path.Join(s.urlPrefix, name)
	utils.Logger.Info("DiskStore.Save - audio stored", zap.String("url", url))
	return url, nil
}
