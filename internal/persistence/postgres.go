package persistence

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dataforge/gateway/internal/monitoring"
)

func marshalItems(items []EvidenceItem) (string, error) {
	b, err := json.Marshal(items)
	return string(b), err
}

//go:embed migrations/*.sql
var migrations embed.FS

// Postgres is the production evidence index, used when
// persistence.backends lists "postgres" (connecting to
// persistence.postgres_dsn).
type Postgres struct {
	db     *sqlx.DB
	logger *monitoring.Logger
}

// NewPostgres connects to dsn via the pgx stdlib driver and applies
// every pending goose migration before returning.
func NewPostgres(ctx context.Context, dsn string, logger *monitoring.Logger) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Postgres{db: db, logger: logger}, nil
}

func (p *Postgres) Persist(ctx context.Context, bundle EvidenceBundle) error {
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO evidence_bundles
			(bundle_id, as_of, watermark, asset, conflicts_count, hash, freshness_sla_met, items)
		VALUES (:bundle_id, :as_of, :watermark, :asset, :conflicts_count, :hash, :freshness_sla_met, :items)
		ON CONFLICT (bundle_id) DO NOTHING`,
		namedBundle(bundle),
	)
	return err
}

func (p *Postgres) Close() error { return p.db.Close() }

type namedBundleRow struct {
	BundleID        string `db:"bundle_id"`
	AsOf            string `db:"as_of"`
	Watermark       string `db:"watermark"`
	Asset           string `db:"asset"`
	ConflictsCount  int    `db:"conflicts_count"`
	Hash            string `db:"hash"`
	FreshnessSLAMet bool   `db:"freshness_sla_met"`
	Items           string `db:"items"`
}

func namedBundle(bundle EvidenceBundle) namedBundleRow {
	items, _ := marshalItems(bundle.Items)
	return namedBundleRow{
		BundleID:        bundle.BundleID,
		AsOf:            bundle.AsOf,
		Watermark:       bundle.Watermark.Format("2006-01-02T15:04:05Z07:00"),
		Asset:           bundle.Asset,
		ConflictsCount:  bundle.ConflictsCount,
		Hash:            bundle.Hash,
		FreshnessSLAMet: bundle.FreshnessSLAMet,
		Items:           items,
	}
}
