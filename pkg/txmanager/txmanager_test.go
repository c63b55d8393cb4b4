package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/FPB-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { t.committed = true; return nil }
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

type fakeBeginner struct {
	begun []*fakeTx
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.begun = append(b.begun, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.Len(t, beginner.begun, 2)
	assert.True(t, beginner.begun[0].rolledBack)
	assert.True(t, beginner.begun[1].committed)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}

func TestDoSerializable_NonRetryableErrorReturnsImmediately(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	businessErr := errors.New("slot taken")
	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return businessErr
	})

	require.ErrorIs(t, err, businessErr)
	assert.Equal(t, 1, attempts)
	require.Len(t, beginner.begun, 1)
	assert.True(t, beginner.begun[0].rolledBack)
}

func TestDoSerializable_NestedCallReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(outerCtx context.Context) error {
		return manager.DoSerializable(outerCtx, func(innerCtx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, beginner.begun, 1)
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.begun, 1)
	assert.True(t, beginner.begun[0].committed)
	assert.False(t, beginner.begun[0].rolledBack)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}
