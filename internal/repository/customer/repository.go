package customer

import (
	"context"
	"strings"

	"github.com/arekzadka7/mini-crm/internal/domain"
)

// Repository persists and fetches customers. It is the only component that
// talks to the store.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (domain.Customer, bool, error)
	Search(ctx context.Context, query string) ([]domain.Customer, error)
}

// Option tunes a Repository implementation.
type Option func(*options)

type options struct {
	escapeWildcards bool
}

// WithEscapedWildcards makes Search treat % and _ in the query as literal
// characters. By default they keep their LIKE wildcard meaning.
func WithEscapedWildcards(escape bool) Option {
	return func(o *options) {
		o.escapeWildcards = escape
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps query for a substring LIKE match.
func likePattern(query string, escape bool) string {
	if escape {
		query = likeEscaper.Replace(query)
	}
	return "%" + query + "%"
}

func cloneCustomer(c domain.Customer) domain.Customer {
	if c.Phone != nil {
		phone := *c.Phone
		c.Phone = &phone
	}
	return c
}
