package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds what is needed to reach a hosted Supabase project.
type SupabaseConfig struct {
	// ConnectionString is the project's Postgres connection string. When
	// empty, one is derived from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the project URL, "https://<project-ref>.supabase.co".
	SupabaseURL string

	// SupabaseKey is the project API key. Optional; when set, the replicated
	// release table can be checked through the REST API after a run.
	SupabaseKey string

	// Password is the database password, not the API key.
	Password string

	Pool PoolConfig
}

// SupabaseClient is the hosted variant of PostgresClient: the same sql.DB
// release store, plus an optional API-side view of the replicated table. It
// satisfies DBProvider, so it can stand in for a local Postgres as the
// replication target.
type SupabaseClient struct {
	db  *sql.DB
	sdk *supabase.Client
	cfg SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect opens the Postgres connection and, when an API key is configured,
// the REST client alongside it.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	connStr := c.cfg.ConnectionString
	if connStr == "" {
		var err error
		connStr, err = c.buildConnectionString()
		if err != nil {
			return err
		}
	}

	// Supabase's pooled endpoint rejects re-prepared statements across
	// pooled sessions; force the simple protocol.
	connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
	connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}
	c.cfg.Pool.apply(db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}
	c.db = db

	if c.cfg.SupabaseURL != "" && c.cfg.SupabaseKey != "" {
		sdk, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase API client: %w", err)
		}
		c.sdk = sdk
	}
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying handle for query/exec operations.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// APIReleaseCount counts rows in the release table through the project's
// REST API. Replication writes over the direct connection; this confirms the
// rows are visible to API consumers too.
func (c *SupabaseClient) APIReleaseCount(ctx context.Context) (int64, error) {
	if c.sdk == nil {
		return 0, fmt.Errorf("supabase API key not configured")
	}
	_, count, err := c.sdk.From("release").Select("*", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("count releases via API: %w", err)
	}
	return count, nil
}

// buildConnectionString derives the direct Postgres connection string from
// the project URL and database password.
func (c *SupabaseClient) buildConnectionString() (string, error) {
	if c.cfg.SupabaseURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if c.cfg.Password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	parsedURL, err := url.Parse(c.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	// The project ref is the first host label.
	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected <project-ref>.supabase.co")
	}
	projectRef := parts[0]

	encodedPassword := url.QueryEscape(c.cfg.Password)
	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require", encodedPassword, projectRef), nil
}

// addConnectionParam appends a query parameter unless it is already present.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}
	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}
	return connStr + separator + key + "=" + value
}
