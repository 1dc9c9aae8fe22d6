package postgres

import (
	"context"
	"errors"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"
	"songcalendar/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const songColumns = `id, to_char(data, 'YYYY-MM-DD'), posicao, titulo, audio, letra, capa`

// PgStorage keeps the song catalog and the admin accounts in Postgres.
type PgStorage struct {
	pool *pgxpool.Pool
}

func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

// Connect opens a pool and checks the server is reachable.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, storage.Wrap("postgres.Connect - pgxpool.New failed", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storage.Wrap("postgres.Connect - ping failed", err)
	}
	return pool, nil
}

func (s *PgStorage) ListAll(ctx context.Context) ([]models.Song, error) {
	return s.list(ctx, "PgStorage.ListAll", `SELECT `+songColumns+` FROM musicas ORDER BY data, posicao`)
}

func (s *PgStorage) ListAllDescending(ctx context.Context) ([]models.Song, error) {
	return s.list(ctx, "PgStorage.ListAllDescending", `SELECT `+songColumns+` FROM musicas ORDER BY data DESC, posicao`)
}

func (s *PgStorage) list(ctx context.Context, op, query string) ([]models.Song, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		utils.Logger.Error(op+" - query failed", zap.Error(err))
		return nil, storage.Wrap(op+" - query failed", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		var song models.Song
		err := rows.Scan(&song.ID, &song.Date, &song.Slot, &song.Title, &song.AudioURL, &song.Lyrics, &song.CoverURL)
		if err != nil {
			utils.Logger.Error(op+" - rows.Scan failed", zap.Error(err))
			return nil, storage.Wrap(op+" - rows.Scan failed", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		utils.Logger.Error(op+" - rows.Err failed", zap.Error(err))
		return nil, storage.Wrap(op+" - rows.Err failed", err)
	}
	return songs, nil
}

func (s *PgStorage) MaxSlot(ctx context.Context, date string) (int, bool, error) {
	var max *int
	err := s.pool.QueryRow(ctx, `SELECT MAX(posicao) FROM musicas WHERE data = $1::date`, date).Scan(&max)
	if err != nil {
		utils.Logger.Error("PgStorage.MaxSlot - queryRow failed", zap.Error(err), zap.String("date", date))
		return 0, false, storage.Wrap("PgStorage.MaxSlot - queryRow failed", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

// Upsert relies on the UNIQUE(data, posicao) constraint so concurrent writers
// to the same pair end up as sequential updates of one row.
func (s *PgStorage) Upsert(ctx context.Context, song *models.Song) error {
	query := `
        INSERT INTO musicas (data, posicao, titulo, audio, letra, capa)
        VALUES ($1::date, $2, $3, $4, $5, $6)
        ON CONFLICT (data, posicao) DO UPDATE
        SET titulo = EXCLUDED.titulo, audio = EXCLUDED.audio, letra = EXCLUDED.letra, capa = EXCLUDED.capa
        RETURNING id
    `
	err := s.pool.QueryRow(ctx, query, song.Date, song.Slot, song.Title, song.AudioURL, song.Lyrics, song.CoverURL).Scan(&song.ID)
	if err != nil {
		utils.Logger.Error("PgStorage.Upsert - queryRow failed", zap.Error(err), zap.String("date", song.Date), zap.Int("slot", song.Slot))
		return storage.Wrap("PgStorage.Upsert - queryRow failed", err)
	}
	return nil
}

func (s *PgStorage) DeleteByID(ctx context.Context, id int) error {
	result, err := s.pool.Exec(ctx, "DELETE FROM musicas WHERE id = $1", id)
	if err != nil {
		utils.Logger.Error("PgStorage.DeleteByID - exec failed", zap.Error(err), zap.Int("id", id))
		return storage.Wrap("PgStorage.DeleteByID - exec failed", err)
	}
	utils.Logger.Debug("PgStorage.DeleteByID", zap.Int("id", id), zap.Int64("rows_affected", result.RowsAffected()))
	return nil
}

func (s *PgStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `SELECT id, username, password FROM users WHERE username = $1`, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		utils.Logger.Error("PgStorage.GetByUsername - queryRow failed", zap.Error(err), zap.String("username", username))
		return nil, storage.Wrap("PgStorage.GetByUsername - queryRow failed", err)
	}
	return &user, nil
}

func (s *PgStorage) CreateIfMissing(ctx context.Context, user *models.User) (bool, error) {
	result, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
		user.Username, user.PasswordHash,
	)
	if err != nil {
		utils.Logger.Error("PgStorage.CreateIfMissing - exec failed", zap.Error(err), zap.String("username", user.Username))
		return false, storage.Wrap("PgStorage.CreateIfMissing - exec failed", err)
	}
	return result.RowsAffected() == 1, nil
}
