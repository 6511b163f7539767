//go:build integration

package entries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres/entries"
	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mirrorme-backend/internal/domain"
)

func TestRepo_Integration_ReadWriteDelete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := entries.New(pool)
	ctx := context.Background()
	pid := uuid.New()

	if err := repo.Write(ctx, pid, "user", "a"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := repo.Write(ctx, pid, "user", "b"); err != nil {
		t.Fatalf("Write (upsert): %v", err)
	}
	got, err := repo.Read(ctx, pid, "user")
	if err != nil || got != "b" {
		t.Fatalf("Read = %q, %v; want b", got, err)
	}

	if err := repo.Delete(ctx, pid, "user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Read(ctx, pid, "user"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Read after delete: err = %v, want ErrNotFound", err)
	}
}

func TestRepo_Integration_TxRollback(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := entries.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()
	pid := uuid.New()
	sentinel := errors.New("abort")

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.Write(ctx, pid, "userProfile", "{}"); err != nil {
			return err
		}
		if err := repo.Write(ctx, pid, "surveyCompleted", "true"); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx err = %v, want sentinel", err)
	}

	snap, err := repo.Snapshot(ctx, pid)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("expected rolled-back namespace to be empty, got %v", snap)
	}
}

func TestRepo_Integration_DeleteStale(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := entries.New(pool)
	ctx := context.Background()

	stale, fresh := uuid.New(), uuid.New()
	for _, pid := range []uuid.UUID{stale, fresh} {
		if err := repo.Write(ctx, pid, "user", "x"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := repo.Write(ctx, pid, "surveyCompleted", "true"); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	old := time.Now().Add(-100 * 24 * time.Hour)
	if _, err := pool.Exec(ctx, `UPDATE session_entries SET updated_at = $1 WHERE profile_id = $2`, old, stale); err != nil {
		t.Fatalf("age entries: %v", err)
	}

	threshold := time.Now().Add(-90 * 24 * time.Hour)
	n, err := repo.CountStale(ctx, threshold)
	if err != nil {
		t.Fatalf("CountStale: %v", err)
	}
	if n < 1 {
		t.Fatalf("CountStale = %d, want >= 1", n)
	}

	deleted, err := repo.DeleteStale(ctx, threshold)
	if err != nil {
		t.Fatalf("DeleteStale: %v", err)
	}
	if deleted < 2 {
		t.Fatalf("DeleteStale = %d, want >= 2", deleted)
	}

	if snap, _ := repo.Snapshot(ctx, stale); len(snap) != 0 {
		t.Errorf("stale namespace still has entries: %v", snap)
	}
	if snap, _ := repo.Snapshot(ctx, fresh); len(snap) != 2 {
		t.Errorf("fresh namespace lost entries: %v", snap)
	}
}
