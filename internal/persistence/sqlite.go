package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dataforge/gateway/internal/monitoring"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS evidence_bundles (
	bundle_id         TEXT PRIMARY KEY,
	as_of             TEXT NOT NULL,
	watermark         TEXT NOT NULL,
	asset             TEXT NOT NULL,
	conflicts_count   INTEGER NOT NULL,
	hash              TEXT NOT NULL,
	freshness_sla_met INTEGER NOT NULL,
	items             TEXT NOT NULL
);`

// SQLite is the embedded, zero-dependency default evidence index: no
// external database required for a single-node deployment.
type SQLite struct {
	db     *sql.DB
	logger *monitoring.Logger
}

// NewSQLite opens (creating if absent) a sqlite database at path and
// ensures its schema exists.
func NewSQLite(path string, logger *monitoring.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

func (s *SQLite) Persist(ctx context.Context, bundle EvidenceBundle) error {
	items, err := json.Marshal(bundle.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evidence_bundles
			(bundle_id, as_of, watermark, asset, conflicts_count, hash, freshness_sla_met, items)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(bundle_id) DO NOTHING`,
		bundle.BundleID, bundle.AsOf, bundle.Watermark, bundle.Asset,
		bundle.ConflictsCount, bundle.Hash, bundle.FreshnessSLAMet, string(items),
	)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
