package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoKinds is returned when no valid media kind is selected.
	ErrNoKinds = errors.New("no media kinds selected: use image, audio or video")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxInputSize is returned when the input size limit is not positive.
	ErrInvalidMaxInputSize = errors.New("invalid max input size: must be positive")

	// ErrInvalidSummaryFormat is returned for an unknown --summary value.
	ErrInvalidSummaryFormat = errors.New("invalid summary format: expected none, text, json or markdown")

	// ErrRecordWithoutDB is returned when --record is used without --db.
	ErrRecordWithoutDB = errors.New("recording redactions requires the site database (--db)")

	// ErrNoDBDir is returned when the database is enabled without a directory.
	ErrNoDBDir = errors.New("database directory must not be empty")

	// ErrInvalidSite is returned when a site in the configuration file has no domain.
	ErrInvalidSite = errors.New("invalid site: domain must not be empty")
)
