package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/mediaredact/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "mediaredact"

	// DefaultLink is the placeholder href when no post link is given.
	DefaultLink = "#"

	// DefaultLanguage is the language of the placeholder texts.
	DefaultLanguage = "en"

	// DefaultBatchSize is the number of files redacted concurrently.
	DefaultBatchSize = 4

	// DefaultMaxInputSize limits how much of a single input is read.
	// Notification bodies are small; 10MB leaves room for inlined markup.
	DefaultMaxInputSize = 10 * 1024 * 1024

	// SummaryNone disables the summary report.
	SummaryNone = "none"

	// SummaryText prints a human-readable summary.
	SummaryText = "text"

	// SummaryJSON prints a JSON summary.
	SummaryJSON = "json"

	// SummaryMarkdown prints a Markdown summary.
	SummaryMarkdown = "markdown"
)

// Config holds all options of a redaction run.
// It is populated from CLI flags and the configuration file, then passed
// down explicitly rather than kept in global state.
type Config struct {
	// Inputs are the HTML files to redact. Empty means standard input.
	Inputs []string

	// OutputDir receives one redacted file per input, keeping the base name.
	// When empty, output goes to standard output.
	OutputDir string

	// PostLink is the href of every placeholder.
	PostLink string

	// Kinds are the media kinds to redact, in order.
	Kinds []model.MediaKind

	// Language selects the placeholder texts.
	Language string

	// Verbose enables debug logging; otherwise only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of inputs processed concurrently.
	BatchSize int

	// MaxInputSize is the maximum number of bytes read from one input.
	MaxInputSize int64

	// Summary selects the summary report format written to standard error.
	Summary string

	// UseDB resolves sites through the SQLite registry in DBDir in
	// addition to the sites listed in the configuration file.
	UseDB bool

	// Record appends every filtered notification to the redaction log.
	// Requires UseDB.
	Record bool

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is the configuration file path. If empty, .mediaredact
	// is searched in the current directory and then the home directory.
	ConfigFilePath string

	// File is the loaded configuration file.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		PostLink:     DefaultLink,
		Kinds:        model.AllMediaKinds(),
		Language:     DefaultLanguage,
		BatchSize:    DefaultBatchSize,
		MaxInputSize: DefaultMaxInputSize,
		Summary:      SummaryNone,
		DBDir:        XDGDataDir(),
		File:         NewFile(),
	}
}

// XDGDataDir returns the XDG data directory for mediaredact.
// On Linux: ~/.local/share/mediaredact
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for mediaredact.
// On Linux: ~/.config/mediaredact
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Kinds) == 0 {
		return ErrNoKinds
	}
	for _, k := range c.Kinds {
		if !k.Valid() {
			return ErrNoKinds
		}
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MaxInputSize <= 0 {
		return ErrInvalidMaxInputSize
	}

	switch c.Summary {
	case SummaryNone, SummaryText, SummaryJSON, SummaryMarkdown:
	default:
		return ErrInvalidSummaryFormat
	}

	if c.Record && !c.UseDB {
		return ErrRecordWithoutDB
	}

	if (c.UseDB || c.Record) && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}

// ApplyDefaults fills options the user left unset from the file's defaults.
// Flags always win: only fields still holding their built-in default change.
func (c *Config) ApplyDefaults(f *File) error {
	if f == nil {
		return nil
	}
	c.File = f

	if c.PostLink == DefaultLink && f.Defaults.Link != "" {
		c.PostLink = f.Defaults.Link
	}
	if c.Language == DefaultLanguage && f.Defaults.Language != "" {
		c.Language = f.Defaults.Language
	}
	if len(f.Defaults.Kinds) > 0 && sameKinds(c.Kinds, model.AllMediaKinds()) {
		kinds, err := ParseKinds(f.Defaults.Kinds)
		if err != nil {
			return err
		}
		c.Kinds = kinds
	}
	return nil
}

// ParseKinds converts kind names into media kinds, keeping their order and
// dropping duplicates.
func ParseKinds(names []string) ([]model.MediaKind, error) {
	kinds := make([]model.MediaKind, 0, len(names))
	seen := make(map[model.MediaKind]bool)
	for _, name := range names {
		kind, err := model.ParseMediaKind(name)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func sameKinds(a, b []model.MediaKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
