package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/arekzadka7/mini-crm/internal/domain"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const (
	sqliteSelectColumns = `SELECT id, name, email, phone FROM customers`

	sqliteSearchWhere        = ` WHERE name LIKE ? OR email LIKE ? OR phone LIKE ?`
	sqliteSearchWhereEscaped = ` WHERE name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`
)

type sqliteRepo struct {
	db     *sql.DB
	logger *log.Logger
	opts   options
}

// NewSQLite returns a Repository backed by a SQLite database handle.
func NewSQLite(db *sql.DB, logger *log.Logger, opts ...Option) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &sqliteRepo{db: db, logger: logger, opts: buildOptions(opts)}
}

func (r *sqliteRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `INSERT INTO customers (name, email, phone) VALUES (?, ?, ?) RETURNING id`

	out := cloneCustomer(c)
	if err := r.db.QueryRowContext(ctx, q, out.Name, out.Email, nullablePhone(out.Phone)).Scan(&out.ID); err != nil {
		return nil, r.classify("create", err)
	}
	return &out, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, "list", sqliteSelectColumns+` ORDER BY id DESC`)
}

func (r *sqliteRepo) GetByID(ctx context.Context, id int64) (domain.Customer, bool, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, sqliteSelectColumns+` WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, false, nil
		}
		return domain.Customer{}, false, r.classify("get", err)
	}
	return c, true, nil
}

func (r *sqliteRepo) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	where := sqliteSearchWhere
	if r.opts.escapeWildcards {
		where = sqliteSearchWhereEscaped
	}
	pattern := likePattern(query, r.opts.escapeWildcards)
	return r.query(ctx, "search", sqliteSelectColumns+where+` ORDER BY id DESC`, pattern, pattern, pattern)
}

func (r *sqliteRepo) query(ctx context.Context, op, q string, args ...any) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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

func (r *sqliteRepo) classify(op string, err error) error {
	if isSQLiteConstraintError(err) {
		return fmt.Errorf("%w: %w", domain.ErrConstraintViolation, err)
	}
	r.logger.Printf("customer repo: %s error=%v", op, err)
	return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
}

func isSQLiteConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended result codes keep the primary code in the low byte.
	return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
}

func nullablePhone(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

var _ Repository = (*sqliteRepo)(nil)
