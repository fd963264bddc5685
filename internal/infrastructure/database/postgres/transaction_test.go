package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionFermee_RefuseLesOperations(t *testing.T) {
	tx := &Transaction{closed: true}
	ctx := context.Background()

	assert.True(t, tx.IsClosed())

	_, err := tx.Query(ctx, "SELECT 1")
	assert.Error(t, err)

	err = tx.Exec(ctx, "UPDATE res_users SET active = FALSE")
	assert.Error(t, err)

	err = tx.Commit(ctx)
	assert.Error(t, err)

	var n int
	err = tx.QueryRow(ctx, "SELECT 1").Scan(&n)
	assert.Error(t, err)
}

func TestTransactionFermee_RollbackIdempotent(t *testing.T) {
	tx := &Transaction{closed: true}

	// Rollback sur une transaction déjà fermée est un no-op
	assert.NoError(t, tx.Rollback(context.Background()))
	assert.True(t, tx.IsClosed())
}

func TestWithTransaction_PoolNonInitialise(t *testing.T) {
	cases := []struct {
		name string
		tm   *TransactionManager
	}{
		{"client nil", NewTransactionManager(nil)},
		{"pool nil", NewTransactionManager(&Client{})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			err := tc.tm.WithTransaction(context.Background(), func(tx *Transaction) error {
				called = true
				return nil
			})
			require.Error(t, err)
			assert.False(t, called)
		})
	}
}
