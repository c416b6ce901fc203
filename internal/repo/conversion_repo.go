package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/curl2make/internal/domain"
)

// uniqueViolation — SQLSTATE нарушения уникальности.
const uniqueViolation = "23505"

// ConversionRepo — репозиторий журнала конверсий.
type ConversionRepo struct {
	pool *pgxpool.Pool
}

// NewConversionRepo создаёт новый ConversionRepo.
func NewConversionRepo(pool *pgxpool.Pool) *ConversionRepo {
	return &ConversionRepo{pool: pool}
}

const conversionColumns = `
	id, request_id, source, status, method, url_host,
	error_code, error, duration_ms, occurred_at, created_at
`

// Create сохраняет запись журнала.
// Повторная запись с тем же ID возвращает ErrAlreadyExists.
func (r *ConversionRepo) Create(ctx context.Context, rec *domain.ConversionRecord) error {
	query := `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.RequestID,
		string(rec.Source),
		string(rec.Status),
		rec.Method,
		rec.URLHost,
		rec.ErrorCode,
		rec.Error,
		rec.DurationMs,
		rec.OccurredAt,
		rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

// GetByID возвращает запись по ID.
func (r *ConversionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ConversionRecord, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE id = $1`

	rec, err := scanConversion(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion by id: %w", err)
	}
	return rec, nil
}

// List возвращает последние limit записей, новые первыми.
func (r *ConversionRepo) List(ctx context.Context, limit int) ([]domain.ConversionRecord, error) {
	query := `
		SELECT ` + conversionColumns + `
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ConversionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteOlderThan удаляет записи, созданные раньше cutoff.
// Возвращает количество удалённых записей.
func (r *ConversionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM conversions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old conversions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanConversion читает одну запись из строки результата.
func scanConversion(row pgx.Row) (*domain.ConversionRecord, error) {
	var (
		rec    domain.ConversionRecord
		source string
		status string
	)
	err := row.Scan(
		&rec.ID,
		&rec.RequestID,
		&source,
		&status,
		&rec.Method,
		&rec.URLHost,
		&rec.ErrorCode,
		&rec.Error,
		&rec.DurationMs,
		&rec.OccurredAt,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Source = domain.ParseConversionSource(source)
	rec.Status = domain.ConversionStatus(status)
	return &rec, nil
}
