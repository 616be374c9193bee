package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mediaplanner/internal/model"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const sessionsTable = "planner_sessions"

const sessionsSchema = `CREATE TABLE IF NOT EXISTS planner_sessions (
	id             UUID PRIMARY KEY,
	strategy       TEXT NOT NULL,
	client_name    TEXT NOT NULL DEFAULT '',
	answers        JSONB NOT NULL,
	recommendation JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS planner_sessions_created_at_idx ON planner_sessions (created_at DESC);`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var sessionColumns = []string{"id", "strategy", "client_name", "answers", "recommendation", "created_at"}

// PgxConn is the subset of pgxpool.Pool the Postgres repository uses
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgSessionRepo struct {
	db PgxConn
}

// NewPostgresSessionRepo creates a PostgreSQL-backed session repository
func NewPostgresSessionRepo(db PgxConn) SessionRepo {
	return &pgSessionRepo{db: db}
}

// EnsureSessionSchema creates the sessions table when it is missing
func EnsureSessionSchema(ctx context.Context, db PgxConn) error {
	if _, err := db.Exec(ctx, sessionsSchema); err != nil {
		return fmt.Errorf("ensure %s: %w", sessionsTable, err)
	}
	return nil
}

func insertSessionSQL(s *model.Session) (string, []any, error) {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return "", nil, err
	}
	rec, err := json.Marshal(s.Recommendation)
	if err != nil {
		return "", nil, err
	}
	return psql.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(s.ID, s.Strategy, s.ClientName, answers, rec, s.CreatedAt).
		ToSql()
}

func getSessionSQL(id string) (string, []any, error) {
	return psql.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func listSessionsSQL(limit int) (string, []any, error) {
	return psql.Select(sessionColumns...).
		From(sessionsTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func (r *pgSessionRepo) Create(ctx context.Context, session *model.Session) error {
	query, args, err := insertSessionSQL(session)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func (r *pgSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	// the id column is a UUID; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query, args, err := getSessionSQL(id)
	if err != nil {
		return nil, err
	}
	session, err := scanSession(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *pgSessionRepo) ListRecent(ctx context.Context, limit int) ([]*model.Session, error) {
	query, args, err := listSessionsSQL(limit)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*model.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var (
		s         model.Session
		answers   []byte
		rec       []byte
		createdAt time.Time
	)
	if err := row.Scan(&s.ID, &s.Strategy, &s.ClientName, &answers, &rec, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal(rec, &s.Recommendation); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}
	s.CreatedAt = createdAt
	return &s, nil
}
