package battlehistory

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/miniature-battle/internal/errors"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRepository implements Repository on an embedded SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) a SQLite history database at path
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to apply schema")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Create stores the record and indexes it under each owner
func (r *SQLiteRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateRecord(input.Record); err != nil {
		return nil, err
	}
	record := input.Record

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle record")
	}
	completedAt := record.CompletedAt.UTC().UnixMilli()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO battle_history (id, battle_type, status, winner_id, winner_owner_id, reason, completed_at, record_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING`,
		record.ID, string(record.BattleType), string(record.Status), record.WinnerID,
		record.WinnerOwnerID, record.Reason, completedAt, string(recordJSON),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert battle record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.AlreadyExistsf("battle %s already archived", record.ID)
	}

	for _, owner := range record.OwnerIDs() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO battle_history_owners (battle_id, owner_id, completed_at) VALUES (?, ?, ?)`,
			record.ID, owner, completedAt,
		); err != nil {
			return nil, errors.Wrapf(err, "failed to index battle for owner %s", owner)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "failed to commit battle record")
	}

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a record by battle ID
func (r *SQLiteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT record_json FROM battle_history WHERE id = ?`, input.BattleID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("battle %s not found in history", input.BattleID).
			WithMeta("battle_id", input.BattleID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battle record")
	}

	record, err := decodeRecord(raw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: record}, nil
}

// List returns an owner's records newest first
func (r *SQLiteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := max(0, input.Offset)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM battle_history_owners WHERE owner_id = ?`, input.OwnerID,
	).Scan(&total); err != nil {
		return nil, errors.Wrapf(err, "failed to count battles for owner %s", input.OwnerID)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT h.record_json
FROM battle_history_owners o
JOIN battle_history h ON h.id = o.battle_id
WHERE o.owner_id = ?
ORDER BY o.completed_at DESC, o.battle_id DESC
LIMIT ? OFFSET ?`, input.OwnerID, limit, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list battles for owner %s", input.OwnerID)
	}
	defer func() { _ = rows.Close() }()

	records := []*BattleRecord{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrapf(err, "failed to scan battle record")
		}
		record, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate battle records")
	}

	return &ListOutput{Records: records, Total: total}, nil
}

// Stats counts wins, losses and draws in SQL
func (r *SQLiteRepository) Stats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	var out StatsOutput
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(CASE WHEN h.winner_id != '' AND h.winner_owner_id = ? THEN 1 END),
    COUNT(CASE WHEN h.winner_id != '' AND h.winner_owner_id != ? THEN 1 END),
    COUNT(CASE WHEN h.winner_id = '' THEN 1 END),
    COUNT(*)
FROM battle_history_owners o
JOIN battle_history h ON h.id = o.battle_id
WHERE o.owner_id = ?`, input.OwnerID, input.OwnerID, input.OwnerID,
	).Scan(&out.Won, &out.Lost, &out.Drawn, &out.Total)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to compute stats for owner %s", input.OwnerID)
	}

	return &out, nil
}

// Delete removes a record; owner index rows cascade
func (r *SQLiteRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM battle_history WHERE id = ?`, input.BattleID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle record")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf("battle %s not found in history", input.BattleID).
			WithMeta("battle_id", input.BattleID)
	}

	return &DeleteOutput{}, nil
}

func decodeRecord(raw string) (*BattleRecord, error) {
	var record BattleRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal battle record")
	}
	return &record, nil
}
