package replication

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"streamcal/pkg/db"
	"streamcal/pkg/domain"
)

// Config wires the replication dependencies.
type Config struct {
	Mongo    *db.Client
	Postgres db.DBProvider
}

// Replicator copies archived releases from MongoDB to Postgres.
//
// This is intentionally a one-shot, "copy everything" flow: the release
// table's unique key absorbs reruns.
type Replicator struct {
	mongo *db.Client
	pg    db.DBProvider
}

// NewReplicator validates the config and builds a replicator.
func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Replicator{
		mongo: cfg.Mongo,
		pg:    cfg.Postgres,
	}, nil
}

// ReplicateReleasesMongoToPostgres reads all releases from Mongo and inserts
// them into the Postgres `release` table. Releases already present (same
// title, date and kind) are skipped. Inserts run in batches so a large
// archive doesn't become one giant transaction.
func (r *Replicator) ReplicateReleasesMongoToPostgres(ctx context.Context) error {
	if err := r.ensureReleaseSchema(ctx); err != nil {
		return err
	}

	releases, err := r.mongo.AllReleases(ctx)
	if err != nil {
		return fmt.Errorf("read releases from mongo: %w", err)
	}

	log.Printf("Loaded %d releases from Mongo, processing in batches...", len(releases))

	totalInserted, err := r.insertBatches(ctx, releases)
	if err != nil {
		return err
	}

	log.Printf("Replication complete: processed %d releases, inserted %d new releases", len(releases), totalInserted)
	return nil
}

func (r *Replicator) ensureReleaseSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// (title, date, kind) mirrors the Mongo upsert key, so replication is
	// idempotent across runs.
	const ddl = `
CREATE TABLE IF NOT EXISTS release (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  date TEXT NOT NULL,
  platform TEXT NOT NULL DEFAULT '',
  synopsis TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL,
  tmdb_id BIGINT,
  letterboxd_rating DOUBLE PRECISION,
  letterboxd_url TEXT,
  poster TEXT,
  UNIQUE (title, date, kind)
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create release table: %w", err)
	}
	return nil
}

// insertBatches inserts all releases in fixed-size transactional batches and
// returns the number actually inserted.
func (r *Replicator) insertBatches(ctx context.Context, releases []domain.Release) (int, error) {
	const batchSize = 100

	totalInserted := 0
	for start := 0; start < len(releases); start += batchSize {
		end := start + batchSize
		if end > len(releases) {
			end = len(releases)
		}

		inserted, err := r.insertReleasesTx(ctx, releases[start:end])
		if err != nil {
			return totalInserted, fmt.Errorf("insert batch [%d:%d]: %w", start, end, err)
		}
		totalInserted += inserted
		log.Printf("Progress: processed %d/%d releases, inserted %d new", end, len(releases), totalInserted)
	}
	return totalInserted, nil
}

// insertReleasesTx inserts one batch within a transaction, skipping rows the
// unique key already holds.
func (r *Replicator) insertReleasesTx(ctx context.Context, batch []domain.Release) (int, error) {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertQuery = `
INSERT INTO release (title, date, platform, synopsis, kind, tmdb_id, letterboxd_rating, letterboxd_url, poster)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (title, date, kind) DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rel := range batch {
		if rel.Title == "" || rel.Date == "" {
			continue
		}

		var tmdbID any
		if rel.TMDBID != 0 {
			tmdbID = rel.TMDBID
		}

		res, err := stmt.ExecContext(ctx,
			rel.Title, rel.Date, rel.Platform, rel.Synopsis, rel.Kind,
			tmdbID, rel.LetterboxdRating, rel.LetterboxdURL, rel.Poster)
		if err != nil {
			return inserted, fmt.Errorf("insert release title=%q: %w", rel.Title, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}
