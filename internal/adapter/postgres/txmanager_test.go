package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chandaslab/chandas-backend/internal/adapter/postgres"
	"github.com/chandaslab/chandas-backend/internal/adapter/postgres/testhelper"
)

// entryExists checks whether a corpus entry with the given source ref exists.
func entryExists(t *testing.T, pool *pgxpool.Pool, sourceRef string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM corpus_entries WHERE source_ref = $1)`,
		sourceRef,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("entryExists query: %v", err)
	}
	return exists
}

func insertEntry(ctx context.Context, q postgres.Querier, sourceRef string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO corpus_entries (source_ref, samhita, samhita_normalized, samhita_bare)
		 VALUES ($1, $2, $2, $2)`,
		sourceRef, "परीक्षा श्लोकः",
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	ref := testhelper.UniqueSourceRef("tx-commit")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), ref)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, ref) {
		t.Fatal("expected entry to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	ref := testhelper.UniqueSourceRef("tx-rollback")
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), ref); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if entryExists(t, pool, ref) {
		t.Fatal("expected entry NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	ref := testhelper.UniqueSourceRef("tx-panic")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if entryExists(t, pool, ref) {
			t.Fatal("expected entry NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertEntry(ctx, postgres.QuerierFromCtx(ctx, pool), ref); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	ref := testhelper.UniqueSourceRef("tx-ctx")

	// Insert inside a transaction, then verify it's visible within the same tx
	// but NOT outside until commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertEntry(ctx, q, ref); err != nil {
			return err
		}

		// Should be visible within the transaction.
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM corpus_entries WHERE source_ref = $1)`, ref).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected entry to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	// After commit, also visible outside.
	if !entryExists(t, pool, ref) {
		t.Fatal("expected entry to exist after committed transaction")
	}
}
