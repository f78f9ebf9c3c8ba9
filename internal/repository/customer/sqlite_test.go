package customer

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/arekzadka7/mini-crm/internal/db"
	"github.com/arekzadka7/mini-crm/internal/domain"
	"github.com/arekzadka7/mini-crm/internal/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_CreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	created, err := repo.Create(ctx, domain.Customer{Name: "Alice", Email: "alice@x.com", Phone: strPtr("555-1234")})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, *created, got)
}

func TestSQLite_CreateWithoutPhoneStoresNull(t *testing.T) {
	ctx := context.Background()
	repo, sqlDB := newSQLiteRepo(t)

	created, err := repo.Create(ctx, domain.Customer{Name: "Bob", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Nil(t, created.Phone)

	var phone sql.NullString
	require.NoError(t, sqlDB.QueryRow(`SELECT phone FROM customers WHERE id = ?`, created.ID).Scan(&phone))
	assert.False(t, phone.Valid)

	got, found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, got.Phone)
}

func TestSQLite_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, sqlDB := newSQLiteRepo(t)

	_, err := repo.Create(ctx, domain.Customer{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.Customer{Name: "B", Email: "a@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM customers WHERE email = 'a@x.com'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSQLite_ConcurrentDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, domain.Customer{Name: fmt.Sprintf("Racer %d", i), Email: "race@x.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrConstraintViolation):
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	c1 := mustCreate(t, repo, "C1", "c1@x.com")
	c2 := mustCreate(t, repo, "C2", "c2@x.com")
	c3 := mustCreate(t, repo, "C3", "c3@x.com")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{c3.ID, c2.ID, c1.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestSQLite_GetByIDMissing(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	got, found, err := repo.GetByID(context.Background(), 4242)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, domain.Customer{}, got)
}

func TestSQLite_Search(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	alice, err := repo.Create(ctx, domain.Customer{Name: "Alice Smith", Email: "alice@x.com", Phone: strPtr("555-0101")})
	require.NoError(t, err)
	bob, err := repo.Create(ctx, domain.Customer{Name: "Bob Jones", Email: "bob@x.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "name substring", query: "ali", want: []int64{alice.ID}},
		{name: "shared email domain newest first", query: "x.com", want: []int64{bob.ID, alice.ID}},
		{name: "phone", query: "0101", want: []int64{alice.ID}},
		{name: "default collation ignores ascii case", query: "JONES", want: []int64{bob.ID}},
		{name: "no match", query: "zed", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSQLite_SearchWildcards(t *testing.T) {
	ctx := context.Background()

	t.Run("wildcards keep their meaning by default", func(t *testing.T) {
		repo, _ := newSQLiteRepo(t)
		plain := mustCreate(t, repo, "Plain", "plain@x.com")

		got, err := repo.Search(ctx, "p_ain")
		require.NoError(t, err)
		assert.Equal(t, []int64{plain.ID}, ids(got))

		got, err = repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []int64{plain.ID}, ids(got))
	})

	t.Run("escaped wildcards match literally", func(t *testing.T) {
		repo, _ := newSQLiteRepo(t, WithEscapedWildcards(true))
		plain := mustCreate(t, repo, "Plain", "plain@x.com")
		percent := mustCreate(t, repo, "100% Cotton", "cotton@x.com")
		under := mustCreate(t, repo, "snake_case", `back\slash@x.com`)

		got, err := repo.Search(ctx, "p_ain")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Search(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []int64{percent.ID}, ids(got))

		got, err = repo.Search(ctx, "_")
		require.NoError(t, err)
		assert.Equal(t, []int64{under.ID}, ids(got))

		got, err = repo.Search(ctx, `k\s`)
		require.NoError(t, err)
		assert.Equal(t, []int64{under.ID}, ids(got))

		got, err = repo.Search(ctx, "plain")
		require.NoError(t, err)
		assert.Equal(t, []int64{plain.ID}, ids(got))
	})
}

func TestSQLite_FirstCustomerScenario(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	_, err := repo.Create(ctx, domain.Customer{Name: "Jane Doe", Email: "jane@co.com", Phone: strPtr("555-0000")})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Customer{ID: 1, Name: "Jane Doe", Email: "jane@co.com", Phone: strPtr("555-0000")}, list[0])
}

func TestSQLite_ClosedStoreIsUnavailable(t *testing.T) {
	ctx := context.Background()
	repo, sqlDB := newSQLiteRepo(t)
	require.NoError(t, sqlDB.Close())

	_, err := repo.Create(ctx, domain.Customer{Name: "A", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, found, err := repo.GetByID(ctx, 1)
	assert.False(t, found)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = repo.Search(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestSQLite_CreateDoesNotAliasPhone(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	phone := "555-1111"

	created, err := repo.Create(context.Background(), domain.Customer{Name: "A", Email: "a@x.com", Phone: &phone})
	require.NoError(t, err)

	phone = "changed"
	assert.Equal(t, "555-1111", created.PhoneOrEmpty())
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%a_b%", likePattern("a_b", false))
	assert.Equal(t, `%a\_b\%c\\d%`, likePattern(`a_b%c\d`, true))
}

func newSQLiteRepo(t *testing.T, opts ...Option) (Repository, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "crm.db")

	require.NoError(t, migrate.ApplySQLite(ctx, path))

	sqlDB, err := db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewSQLite(sqlDB, nil, opts...), sqlDB
}

func mustCreate(t *testing.T, repo Repository, name, email string) *domain.Customer {
	t.Helper()
	c, err := repo.Create(context.Background(), domain.Customer{Name: name, Email: email})
	require.NoError(t, err)
	return c
}

func ids(customers []domain.Customer) []int64 {
	out := make([]int64, 0, len(customers))
	for _, c := range customers {
		out = append(out, c.ID)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
