// Package store persists users and scenes in PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Store struct {
	pool *pgxpool.Pool
}

// New opens a connection pool and verifies it with a ping.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

type User struct {
	ID          string
	Email       string
	Password    string // bcrypt hash
	DisplayName string
}

func (s *Store) CreateUser(ctx context.Context, u User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password, display_name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.Password, u.DisplayName,
	)
	if isDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, `SELECT id, email, password, display_name FROM users WHERE email = $1`, email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.getUser(ctx, `SELECT id, email, password, display_name FROM users WHERE id = $1`, id)
}

func (s *Store) getUser(ctx context.Context, query, arg string) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

// SceneRecord is a stored scene. Document holds the scene encoded in the
// wavefront subset format.
type SceneRecord struct {
	ID        string
	Name      string
	OwnerID   string
	Document  string
	Version   int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Store) CreateScene(ctx context.Context, rec SceneRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scenes (id, name, owner_id, document, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 1, now(), now())`,
		rec.ID, rec.Name, rec.OwnerID, rec.Document,
	)
	if isDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert scene: %w", err)
	}
	return nil
}

func (s *Store) GetScene(ctx context.Context, id string) (*SceneRecord, error) {
	var rec SceneRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, document, version, created_at, updated_at FROM scenes WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.OwnerID, &rec.Document, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select scene: %w", err)
	}
	return &rec, nil
}

func (s *Store) ListScenesForUser(ctx context.Context, ownerID string) ([]SceneRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, owner_id, document, version, created_at, updated_at
		 FROM scenes WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("select scenes: %w", err)
	}
	defer rows.Close()

	var recs []SceneRecord
	for rows.Next() {
		var rec SceneRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.OwnerID, &rec.Document,
			&rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// UpdateSceneDocument stores a new document revision and bumps the
// version.
func (s *Store) UpdateSceneDocument(ctx context.Context, id, document string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE scenes SET document = $2, version = version + 1, updated_at = now() WHERE id = $1`,
		id, document,
	)
	if err != nil {
		return fmt.Errorf("update scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteScene(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSnapshot keeps a point-in-time copy of a scene document, used by
// the editor hub on save.
func (s *Store) CreateSnapshot(ctx context.Context, id, sceneID string, version int32, document string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scene_snapshots (id, scene_id, version, document, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		id, sceneID, version, document,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *Store) GetLatestSnapshot(ctx context.Context, sceneID string) (string, int32, error) {
	var (
		document string
		version  int32
	)
	err := s.pool.QueryRow(ctx,
		`SELECT document, version FROM scene_snapshots WHERE scene_id = $1 ORDER BY version DESC LIMIT 1`,
		sceneID,
	).Scan(&document, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, ErrNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("select snapshot: %w", err)
	}
	return document, version, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
