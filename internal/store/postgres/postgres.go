package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users       { return &users{db: s.db} }
func (s *pgStore) Thoughts() store.Thoughts { return &thoughts{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS thoughts (
            thought_id TEXT PRIMARY KEY,
            message TEXT NOT NULL,
            hearts INTEGER NOT NULL DEFAULT 0,
            owner_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS thought_likes (
            thought_id TEXT NOT NULL REFERENCES thoughts(thought_id) ON DELETE CASCADE,
            user_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (thought_id, user_id)
        )`,
		`CREATE INDEX IF NOT EXISTS thought_likes_user_idx ON thought_likes (user_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, username, email, password_hash, created_at)
        VALUES ($1,$2,$3,$4,$5)
    `, id, m.Username, m.Email, m.PasswordHash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicate
		}
		return nil, err
	}
	out := *m
	out.UserID = id
	out.CreatedAt = now
	return &out, nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, email, password_hash, created_at
        FROM users WHERE user_id=$1
    `, userID)
	return scanUser(row)
}

func (u *users) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, username, email, password_hash, created_at
        FROM users WHERE username=$1
    `, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*model.User, error) {
	var out model.User
	if err := row.Scan(&out.UserID, &out.Username, &out.Email, &out.PasswordHash, &out.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// --- Thoughts ---

type thoughts struct{ db *sql.DB }

// sortColumns is the allow-list mapping request sort fields to columns.
// Anything outside it never reaches the query text.
var sortColumns = map[model.SortField]string{
	model.SortByCreatedAt: "created_at",
	model.SortByHearts:    "hearts",
}

func (t *thoughts) Create(ctx context.Context, m *model.Thought) (*model.Thought, error) {
	id := m.ThoughtID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO thoughts (thought_id, message, hearts, owner_id, created_at, updated_at)
        VALUES ($1,$2,0,$3,$4,$4)
    `, id, m.Message, m.Owner, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ThoughtID = id
	out.Hearts = 0
	out.LikedBy = []string{}
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (t *thoughts) GetByID(ctx context.Context, thoughtID string) (*model.Thought, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT thought_id, message, hearts, owner_id, created_at, updated_at
        FROM thoughts WHERE thought_id=$1
    `, thoughtID)
	out, err := scanThought(row)
	if err != nil {
		return nil, err
	}
	likers, err := t.likersFor(ctx, []string{out.ThoughtID})
	if err != nil {
		return nil, err
	}
	out.LikedBy = likers[out.ThoughtID]
	if out.LikedBy == nil {
		out.LikedBy = []string{}
	}
	return out, nil
}

func (t *thoughts) List(ctx context.Context, req model.ListThoughtsRequest) ([]*model.Thought, int, error) {
	where := ""
	args := []interface{}{}
	if req.Hearts != nil {
		where = " WHERE hearts = $1"
		args = append(args, *req.Hearts)
	} else if req.MinHearts != nil {
		where = " WHERE hearts >= $1"
		args = append(args, *req.MinHearts)
	}

	var total int
	if err := t.db.QueryRowContext(ctx, `SELECT count(*) FROM thoughts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*model.Thought{}, 0, nil
	}

	col, ok := sortColumns[req.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if req.Order == model.OrderAsc {
		dir = "ASC"
	}

	query := `SELECT thought_id, message, hearts, owner_id, created_at, updated_at FROM thoughts` + where +
		fmt.Sprintf(" ORDER BY %s %s, created_at DESC, thought_id", col, dir) +
		fmt.Sprintf(" LIMIT %d OFFSET %d", req.Limit, (req.Page-1)*req.Limit)

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Thought
	var ids []string
	for rows.Next() {
		var m model.Thought
		if err := rows.Scan(&m.ThoughtID, &m.Message, &m.Hearts, &m.Owner, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		m.LikedBy = []string{}
		out = append(out, &m)
		ids = append(ids, m.ThoughtID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	likers, err := t.likersFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, m := range out {
		if l := likers[m.ThoughtID]; l != nil {
			m.LikedBy = l
		}
	}
	if out == nil {
		out = []*model.Thought{}
	}
	return out, total, nil
}

func (t *thoughts) UpdateMessage(ctx context.Context, thoughtID, ownerID, message string) (*model.Thought, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE thoughts SET message=$1, updated_at=$2
        WHERE thought_id=$3 AND owner_id=$4
    `, message, time.Now().UTC(), thoughtID, ownerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, t.classifyMiss(ctx, thoughtID)
	}
	return t.GetByID(ctx, thoughtID)
}

func (t *thoughts) Delete(ctx context.Context, thoughtID, ownerID string) error {
	res, err := t.db.ExecContext(ctx, `
        DELETE FROM thoughts WHERE thought_id=$1 AND owner_id=$2
    `, thoughtID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return t.classifyMiss(ctx, thoughtID)
	}
	return nil
}

func (t *thoughts) Like(ctx context.Context, thoughtID, userID string) (*model.Thought, error) {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Conditional insert: takes effect only when the thought exists and
	// this user is not yet in the liker set.
	res, err := tx.ExecContext(ctx, `
        INSERT INTO thought_likes (thought_id, user_id, created_at)
        SELECT $1, $2, $3 WHERE EXISTS (SELECT 1 FROM thoughts WHERE thought_id=$1)
        ON CONFLICT (thought_id, user_id) DO NOTHING
    `, thoughtID, userID, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		_ = tx.Rollback()
		if _, err := t.GetByID(ctx, thoughtID); err != nil {
			return nil, err
		}
		return nil, model.ErrAlreadyLiked
	}
	if _, err := tx.ExecContext(ctx, `UPDATE thoughts SET hearts = hearts + 1 WHERE thought_id=$1`, thoughtID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t.GetByID(ctx, thoughtID)
}

func (t *thoughts) LikedThoughtIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT thought_id FROM thought_likes WHERE user_id=$1 ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// classifyMiss resolves a zero-row conditional write into the right error:
// the thought is either gone or owned by someone else.
func (t *thoughts) classifyMiss(ctx context.Context, thoughtID string) error {
	var one int
	err := t.db.QueryRowContext(ctx, `SELECT 1 FROM thoughts WHERE thought_id=$1`, thoughtID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	if err != nil {
		return err
	}
	return model.ErrForbidden
}

// likersFor loads the liker sets for a batch of thought ids.
func (t *thoughts) likersFor(ctx context.Context, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := t.db.QueryContext(ctx, `
        SELECT thought_id, user_id FROM thought_likes
        WHERE thought_id IN (`+strings.Join(ph, ",")+`) ORDER BY created_at
    `, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var tid, uid string
		if err := rows.Scan(&tid, &uid); err != nil {
			return nil, err
		}
		out[tid] = append(out[tid], uid)
	}
	return out, rows.Err()
}

func scanThought(row *sql.Row) (*model.Thought, error) {
	var out model.Thought
	if err := row.Scan(&out.ThoughtID, &out.Message, &out.Hearts, &out.Owner, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
