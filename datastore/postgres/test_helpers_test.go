package postgres

import (
	"context"
	"testing"

	"github.com/rubenv/pgtest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/pkg/logger"
)

// testContext returns a context that is canceled when the test finishes
// (stand-in for testing.T.Context, which requires Go 1.24).
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// newTestStore starts an in-process postgres with the schema applied and the lookup
// tables seeded. The server is stopped when the test ends.
func newTestStore(t *testing.T) *DataStore {
	t.Helper()
	pg, err := pgtest.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pg.Stop())
	})

	store := New(pg.DB, logger.Test(t))
	require.NoError(t, store.Bootstrap(testContext(t)))
	require.NoError(t, store.Seed(testContext(t)))

	return store
}

func mustCreatePersonnel(t *testing.T, store *DataStore, name string) datastore.Personnel {
	t.Helper()
	p, err := store.Personnel().Create(testContext(t), datastore.PersonnelInput{Name: name})
	require.NoError(t, err)

	return p
}

func mustCreateContract(t *testing.T, store *DataStore, company string) datastore.Contract {
	t.Helper()
	c, err := store.Contracts().Create(testContext(t), datastore.ContractInput{
		CompanyName:   company,
		ContractType:  "Security Services",
		StartDate:     datastore.NewDate(2025, 1, 1),
		EndDate:       datastore.NewDate(2025, 12, 31),
		ContractValue: decimal.RequireFromString("120000.00"),
	})
	require.NoError(t, err)

	return c
}

// lookupID returns the id of the seeded lookup row with the given name.
func lookupID[T any](t *testing.T, rows []T, match func(T) (int64, bool)) int64 {
	t.Helper()
	for _, row := range rows {
		if id, ok := match(row); ok {
			return id
		}
	}
	require.FailNow(t, "lookup row not found")

	return 0
}
