package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"
	"songcalendar/internal/storage"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type songRow struct {
	ID      int     `gorm:"primaryKey;autoIncrement"`
	Data    string  `gorm:"not null;uniqueIndex:idx_musicas_data_posicao"`
	Posicao int     `gorm:"not null;uniqueIndex:idx_musicas_data_posicao;check:posicao BETWEEN 1 AND 100"`
	Titulo  *string
	Audio   *string
	Letra   *string
	Capa    *string
}

func (songRow) TableName() string { return "musicas" }

type userRow struct {
	ID       int    `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"not null;uniqueIndex"`
	Password string `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

// Store is the single-file database flavour of the catalog, used for small
// deployments and for end-to-end tests.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, storage.Wrap("sqlite.Open - gorm.Open failed", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, storage.Wrap("sqlite.Open - db.DB failed", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&songRow{}, &userRow{}); err != nil {
		sqlDB.Close()
		return nil, storage.Wrap("sqlite.Open - AutoMigrate failed", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ListAll(ctx context.Context) ([]models.Song, error) {
	var rows []songRow
	if err := s.db.WithContext(ctx).Order("data").Order("posicao").Find(&rows).Error; err != nil {
		utils.Logger.Error("sqlite.Store.ListAll - find failed", zap.Error(err))
		return nil, storage.Wrap("sqlite.Store.ListAll - find failed", err)
	}
	return toSongs(rows), nil
}

func (s *Store) ListAllDescending(ctx context.Context) ([]models.Song, error) {
	var rows []songRow
	if err := s.db.WithContext(ctx).Order("data DESC").Order("posicao").Find(&rows).Error; err != nil {
		utils.Logger.Error("sqlite.Store.ListAllDescending - find failed", zap.Error(err))
		return nil, storage.Wrap("sqlite.Store.ListAllDescending - find failed", err)
	}
	return toSongs(rows), nil
}

func (s *Store) MaxSlot(ctx context.Context, date string) (int, bool, error) {
	var max sql.NullInt64
	err := s.db.WithContext(ctx).Model(&songRow{}).Where("data = ?", date).Select("MAX(posicao)").Row().Scan(&max)
	if err != nil {
		utils.Logger.Error("sqlite.Store.MaxSlot - scan failed", zap.Error(err), zap.String("date", date))
		return 0, false, storage.Wrap("sqlite.Store.MaxSlot - scan failed", err)
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

func (s *Store) Upsert(ctx context.Context, song *models.Song) error {
	row := songRow{
		Data:    song.Date,
		Posicao: song.Slot,
		Titulo:  song.Title,
		Audio:   song.AudioURL,
		Letra:   song.Lyrics,
		Capa:    song.CoverURL,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "data"}, {Name: "posicao"}},
		DoUpdates: clause.AssignmentColumns([]string{"titulo", "audio", "letra", "capa"}),
	}).Create(&row).Error
	if err != nil {
		utils.Logger.Error("sqlite.Store.Upsert - create failed", zap.Error(err), zap.String("date", song.Date), zap.Int("slot", song.Slot))
		return storage.Wrap("sqlite.Store.Upsert - create failed", err)
	}
	song.ID = row.ID
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int) error {
	if err := s.db.WithContext(ctx).Delete(&songRow{}, id).Error; err != nil {
		utils.Logger.Error("sqlite.Store.DeleteByID - delete failed", zap.Error(err), zap.Int("id", id))
		return storage.Wrap("sqlite.Store.DeleteByID - delete failed", err)
	}
	return nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrUserNotFound
		}
		utils.Logger.Error("sqlite.Store.GetByUsername - first failed", zap.Error(err), zap.String("username", username))
		return nil, storage.Wrap("sqlite.Store.GetByUsername - first failed", err)
	}
	return &models.User{ID: row.ID, Username: row.Username, PasswordHash: row.Password}, nil
}

func (s *Store) CreateIfMissing(ctx context.Context, user *models.User) (bool, error) {
	row := userRow{Username: user.Username, Password: user.PasswordHash}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		utils.Logger.Error("sqlite.Store.CreateIfMissing - create failed", zap.Error(result.Error), zap.String("username", user.Username))
		return false, storage.Wrap("sqlite.Store.CreateIfMissing - create failed", result.Error)
	}
	if result.RowsAffected == 1 {
		user.ID = row.ID
		return true, nil
	}
	return false, nil
}

func toSongs(rows []songRow) []models.Song {
	songs := make([]models.Song, 0, len(rows))
	for _, r := range rows {
		songs = append(songs, models.Song{
			ID:       r.ID,
			Date:     r.Data,
			Slot:     r.Posicao,
			Title:    r.Titulo,
			AudioURL: r.Audio,
			Lyrics:   r.Letra,
			CoverURL: r.Capa,
		})
	}
	return songs
}
