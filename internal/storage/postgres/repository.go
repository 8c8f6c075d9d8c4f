package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unity-hands/server/internal/domain/applications"
	"github.com/unity-hands/server/internal/domain/events"
)

// Repository bundles the PostgreSQL-backed stores over the events and
// application tables.
type Repository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Applications() applications.Repository {
	return &ApplicationRepository{pool: r.pool, tx: r.tx}
}

type EventRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type ApplicationRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx, so repository
// methods run unchanged inside or outside a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *ApplicationRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
