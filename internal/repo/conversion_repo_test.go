package repo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/curl2make/internal/domain"
)

// newTestRepo подключается к TEST_DB_URL; без неё тест пропускается.
func newTestRepo(t *testing.T) *ConversionRepo {
	t.Helper()

	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL is not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE conversions"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return NewConversionRepo(pool)
}

func TestConversionRepo_CreateGetList(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	rec := domain.NewConversionRecord(domain.ConversionEvent{
		RequestID:  uuid.New(),
		Source:     domain.SourceAPI,
		Status:     domain.ConversionStatusSucceeded,
		Method:     "post",
		URLHost:    "example.com",
		DurationMs: 1,
		OccurredAt: time.Now().UTC(),
	})

	if err := r.Create(ctx, rec); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Create(ctx, rec); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := r.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Source != domain.SourceAPI || got.Method != "post" || got.URLHost != "example.com" {
		t.Errorf("unexpected record: %+v", got)
	}

	if _, err := r.GetByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	list, err := r.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 record, got %d", len(list))
	}
}

func TestConversionRepo_DeleteOlderThan(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	old := domain.NewConversionRecord(domain.ConversionEvent{
		RequestID:  uuid.New(),
		Source:     domain.SourceWeb,
		Status:     domain.ConversionStatusFailed,
		OccurredAt: time.Now().UTC(),
	})
	old.CreatedAt = time.Now().Add(-48 * time.Hour)

	fresh := domain.NewConversionRecord(domain.ConversionEvent{
		RequestID:  uuid.New(),
		Source:     domain.SourceWeb,
		Status:     domain.ConversionStatusSucceeded,
		OccurredAt: time.Now().UTC(),
	})

	for _, rec := range []*domain.ConversionRecord{old, fresh} {
		if err := r.Create(ctx, rec); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	deleted, err := r.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
}
