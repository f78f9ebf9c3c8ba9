package customer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/arekzadka7/mini-crm/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgSelectColumns = `SELECT id, name, email, phone FROM customers`

	// Postgres treats a backslash as the default LIKE escape, so the
	// unescaped mode has to switch escaping off explicitly.
	pgSearchWhere        = ` WHERE name LIKE $1 ESCAPE '' OR email LIKE $1 ESCAPE '' OR phone LIKE $1 ESCAPE ''`
	pgSearchWhereEscaped = ` WHERE name LIKE $1 OR email LIKE $1 OR phone LIKE $1`
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
	opts   options
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger, opts ...Option) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger, opts: buildOptions(opts)}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, email, phone)
VALUES ($1, $2, $3)
RETURNING id
`
	out := cloneCustomer(c)
	if err := r.pool.QueryRow(ctx, q, out.Name, out.Email, out.Phone).Scan(&out.ID); err != nil {
		return nil, r.classify("create", err)
	}
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, "list", pgSelectColumns+` ORDER BY id DESC`)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (domain.Customer, bool, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, pgSelectColumns+` WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, false, nil
		}
		return domain.Customer{}, false, r.classify("get", err)
	}
	return c, true, nil
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	where := pgSearchWhere
	if r.opts.escapeWildcards {
		where = pgSearchWhereEscaped
	}
	return r.query(ctx, "search", pgSelectColumns+where+` ORDER BY id DESC`, likePattern(query, r.opts.escapeWildcards))
}

func (r *postgresRepo) query(ctx context.Context, op, q string, args ...any) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, r.classify(op, err)
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, r.classify(op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(op, err)
	}
	return result, nil
}

func (r *postgresRepo) classify(op string, err error) error {
	var pgErr *pgconn.PgError
	// Class 23 is integrity_constraint_violation (unique, not null, check).
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return fmt.Errorf("%w: %w", domain.ErrConstraintViolation, err)
	}
	r.logger.Printf("customer repo: %s error=%v", op, err)
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}

var _ Repository = (*postgresRepo)(nil)
