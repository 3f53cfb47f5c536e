package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/mediaredact/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "mediaredact.db"

// ErrSiteNotFound is returned when deleting a site that is not registered.
var ErrSiteNotFound = errors.New("site not found")

// SiteDB is a SQLite-backed site registry and redaction log.
// It implements privacy.Resolver and is safe for concurrent use.
type SiteDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SiteDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a SiteDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SiteDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create the file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SiteDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Path returns the database file path.
func (sdb *SiteDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SiteDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SiteDB) createTables() error {
	schema := `
	-- Sites of the network and their visibility code
	CREATE TABLE IF NOT EXISTS sites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '/',
		public INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(domain, path)
	);

	CREATE INDEX IF NOT EXISTS idx_sites_domain ON sites(domain);

	-- One row per filtered notification
	CREATE TABLE IF NOT EXISTS redactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		post_link TEXT,
		images INTEGER NOT NULL DEFAULT 0,
		audio INTEGER NOT NULL DEFAULT 0,
		video INTEGER NOT NULL DEFAULT 0,
		digest TEXT,
		error TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_redactions_timestamp ON redactions(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertSite registers a site or updates the visibility of an existing one.
// Domain and path are normalized before storing. It returns the site ID.
func (sdb *SiteDB) UpsertSite(ctx context.Context, site *model.Site) (int64, error) {
	domain := model.NormalizeDomain(site.Domain)
	if domain == "" {
		return 0, errors.New("site domain must not be empty")
	}
	path := model.NormalizeSitePath(site.Path)

	query := `
	INSERT INTO sites (domain, path, public)
	VALUES (?, ?, ?)
	ON CONFLICT(domain, path) DO UPDATE SET
		public = excluded.public,
		updated_at = CURRENT_TIMESTAMP
	RETURNING id
	`

	var id int64
	if err := sdb.db.QueryRowContext(ctx, query, domain, path, int(site.Public)).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert site: %w", err)
	}

	site.ID = id
	site.Domain = domain
	site.Path = path
	return id, nil
}

// DeleteSite removes the site registered at domain and path.
// It returns ErrSiteNotFound if no such site exists.
func (sdb *SiteDB) DeleteSite(ctx context.Context, domain, path string) error {
	result, err := sdb.db.ExecContext(ctx,
		`DELETE FROM sites WHERE domain = ? AND path = ?`,
		model.NormalizeDomain(domain),
		model.NormalizeSitePath(path),
	)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if n == 0 {
		return ErrSiteNotFound
	}
	return nil
}

// ListSites returns all registered sites ordered by domain and path.
func (sdb *SiteDB) ListSites(ctx context.Context) ([]model.Site, error) {
	rows, err := sdb.db.QueryContext(ctx, `
	SELECT id, domain, path, public, updated_at
	FROM sites
	ORDER BY domain, path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	sites := make([]model.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}

	return sites, rows.Err()
}

// ResolveSite implements privacy.Resolver. Among the sites registered for
// the host (or its "www."-less form), the one with the deepest path that
// prefixes the URL path wins. It returns nil, nil when nothing matches.
func (sdb *SiteDB) ResolveSite(ctx context.Context, host, path string) (*model.Site, error) {
	domains := model.LookupDomains(host)
	if len(domains) == 0 {
		return nil, nil
	}
	paths := model.LookupPaths(path)

	args := make([]any, 0, len(domains)+len(paths)+1)
	for _, d := range domains {
		args = append(args, d)
	}
	for _, p := range paths {
		args = append(args, p)
	}
	args = append(args, domains[0])

	query := `
	SELECT id, domain, path, public, updated_at
	FROM sites
	WHERE domain IN (` + placeholders(len(domains)) + `)
	AND path IN (` + placeholders(len(paths)) + `)
	ORDER BY LENGTH(path) DESC, domain = ? DESC
	LIMIT 1
	`

	site, err := scanSite(sdb.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// RedactionRecord is one row of the redaction log.
type RedactionRecord struct {
	ID       int64
	Source   string
	PostLink string
	Images   int
	Audio    int
	Video    int

	// Digest is the SHA3-256 of the filtered content, hex encoded.
	Digest    string
	Error     string
	Timestamp time.Time
}

// RecordNotification appends a filtered notification to the redaction log.
func (sdb *SiteDB) RecordNotification(ctx context.Context, n *model.Notification) error {
	postLink := ""
	if n.Activity != nil {
		postLink = n.Activity.PrimaryLink
	}

	_, err := sdb.db.ExecContext(ctx, `
	INSERT INTO redactions (source, post_link, images, audio, video, digest, error)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		n.Source,
		postLink,
		n.Redacted(model.MediaImage),
		n.Redacted(model.MediaAudio),
		n.Redacted(model.MediaVideo),
		ContentDigest(n.Content),
		n.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// ContentDigest returns the hex-encoded SHA3-256 of content. Two log
// entries with the same digest were mailed with identical bodies.
func ContentDigest(content string) string {
	sum := sha3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ListRedactions returns the most recent log entries, newest first.
// A limit of zero or less returns every entry.
func (sdb *SiteDB) ListRedactions(ctx context.Context, limit int) ([]RedactionRecord, error) {
	query := `
	SELECT id, source, post_link, images, audio, video, digest, error, timestamp
	FROM redactions
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := sdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query redactions: %w", err)
	}
	defer rows.Close()

	records := make([]RedactionRecord, 0)
	for rows.Next() {
		var rec RedactionRecord
		var postLink, digest, errText sql.NullString
		var timestamp string

		if err := rows.Scan(
			&rec.ID,
			&rec.Source,
			&postLink,
			&rec.Images,
			&rec.Audio,
			&rec.Video,
			&digest,
			&errText,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan redaction: %w", err)
		}

		rec.PostLink = postLink.String
		rec.Digest = digest.String
		rec.Error = errText.String
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSite reads one sites row.
func scanSite(row rowScanner) (*model.Site, error) {
	var site model.Site
	var public int
	var updatedAt string

	err := row.Scan(&site.ID, &site.Domain, &site.Path, &public, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan site: %w", err)
	}

	site.Public = model.Visibility(public)
	site.UpdatedAt = parseTimestamp(updatedAt)
	return &site, nil
}

// placeholders returns n comma-separated SQL parameter markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a SQLite timestamp, returning zero time if no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
