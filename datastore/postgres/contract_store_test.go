package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rqa-security/guardhouse/datastore"
)

func TestContractStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("company name from client", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		client, err := store.Clients().Create(testContext(t), datastore.ClientInput{BusinessName: "SM Prime Holdings"})
		require.NoError(t, err)

		created, err := store.Contracts().Create(testContext(t), datastore.ContractInput{
			ClientID:      datastore.Int(client.ClientID),
			CompanyName:   "ignored",
			ContractType:  "Mall Security",
			StartDate:     datastore.NewDate(2025, 3, 1),
			EndDate:       datastore.NewDate(2026, 2, 28),
			ContractValue: decimal.RequireFromString("250000.50"),
			PaymentTerms:  "Monthly",
		})
		require.NoError(t, err)
		assert.Equal(t, "SM Prime Holdings", created.CompanyName)
		assert.Equal(t, "Mall Security - SM Prime Holdings", created.Title())
		assert.Equal(t, datastore.ContractStatusActive, created.Status)
		assert.True(t, decimal.RequireFromString("250000.50").Equal(created.ContractValue))
		assert.Equal(t, datastore.NewDate(2025, 3, 1), created.StartDate)
	})

	t.Run("unknown client", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)

		_, err := store.Contracts().Create(testContext(t), datastore.ContractInput{
			ClientID:     datastore.Int(77),
			ContractType: "Mall Security",
			StartDate:    datastore.NewDate(2025, 3, 1),
			EndDate:      datastore.NewDate(2026, 2, 28),
		})
		require.ErrorIs(t, err, datastore.ErrInvalidReference)
	})
}

func TestContractStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	created := mustCreateContract(t, store, "Jollibee Foods")

	updated, err := store.Contracts().Update(testContext(t), created.ContractID, datastore.ContractInput{
		CompanyName:   "Jollibee Foods Corporation",
		ContractType:  "Store Security",
		StartDate:     created.StartDate,
		EndDate:       created.EndDate,
		ContractValue: decimal.RequireFromString("99.99"),
		Status:        datastore.ContractStatusSuspended,
		Notes:         "on hold",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jollibee Foods Corporation", updated.CompanyName)
	assert.Equal(t, datastore.ContractStatusSuspended, updated.Status)
	assert.Equal(t, "on hold", updated.Notes)

	_, err = store.Contracts().Update(testContext(t), created.ContractID+1, datastore.ContractInput{
		CompanyName:  "x",
		ContractType: "y",
		StartDate:    created.StartDate,
		EndDate:      created.EndDate,
	})
	require.ErrorIs(t, err, datastore.ErrContractNotFound)

	require.NoError(t, store.Contracts().Delete(testContext(t), created.ContractID))
	require.ErrorIs(t, store.Contracts().Delete(testContext(t), created.ContractID), datastore.ErrContractNotFound)

	contracts, err := store.Contracts().List(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, contracts)
}

func TestContractStore_Extend(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	created := mustCreateContract(t, store, "Meralco")

	_, err := store.Contracts().Update(testContext(t), created.ContractID, datastore.ContractInput{
		CompanyName:  created.CompanyName,
		ContractType: created.ContractType,
		StartDate:    created.StartDate,
		EndDate:      created.EndDate,
		Status:       datastore.ContractStatusInactive,
	})
	require.NoError(t, err)

	extended, err := store.Contracts().Extend(testContext(t), created.ContractID, 2)
	require.NoError(t, err)
	assert.Equal(t, datastore.NewDate(2027, 12, 31), extended.EndDate)
	assert.Equal(t, datastore.ContractStatusActive, extended.Status)

	_, err = store.Contracts().Extend(testContext(t), created.ContractID+1, 1)
	require.ErrorIs(t, err, datastore.ErrContractNotFound)

	_, err = store.Contracts().Extend(testContext(t), created.ContractID, 0)
	require.Error(t, err)
}
