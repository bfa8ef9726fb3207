// internal/repository/biodata/postgres.go
package biodata

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"biodata-service/internal/models"

	"github.com/lib/pq"
)

// PostgresRepository keeps each record as a JSONB document keyed by an
// ObjectID-format text id, so both stores share one identifier format.
type PostgresRepository struct {
	db    *sql.DB
	table string
}

func NewPostgresRepository(db *sql.DB, table string) *PostgresRepository {
	return &PostgresRepository{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the backing table when it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, r.table))
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]models.BiodataRecord, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, data FROM %s ORDER BY created_at, id`, r.table))
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	out := make([]models.BiodataRecord, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec, err := decodeRecord(id, data)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error) {
	needle, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode application_number: %w", err)
	}

	var (
		id   string
		data []byte
	)
	err = r.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT id, data FROM %s WHERE data->'application_number' = $1::jsonb LIMIT 1`, r.table),
		string(needle),
	).Scan(&id, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select by application_number: %w", err)
	}
	return decodeRecord(id, data)
}

func (r *PostgresRepository) Create(ctx context.Context, fields models.BiodataRecord) (string, error) {
	data, err := json.Marshal(fields.WithoutID())
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	id := models.NewID()
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, r.table),
		id, string(data))
	if err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (models.BiodataRecord, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, r.table), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select by id: %w", err)
	}
	return decodeRecord(id, data)
}

func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error {
	if err := checkID(id); err != nil {
		return err
	}

	patch, err := json.Marshal(fields.WithoutID())
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	// jsonb || merges top-level keys, matching a $set of the supplied fields.
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET data = data || $2::jsonb WHERE id = $1`, r.table),
		id, string(patch))
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func checkID(id string) error {
	if !models.IsValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeRecord(id string, data []byte) (models.BiodataRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	rec := models.BiodataRecord{}
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	rec[models.IDField] = id
	return rec, nil
}
