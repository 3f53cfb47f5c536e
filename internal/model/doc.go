// Package model defines the data types shared by the redaction packages.
//
// This package contains the following main types:
//   - MediaKind: the closed set of media a redaction pass can target
//   - Activity and Group: the host records that accompany a notification
//   - Site and Visibility: content containers resolved from media URLs
//   - Notification and PassStats: an email body and what the passes did to it
//   - Summary: per-batch totals for reports
//
// Keeping these in one package lets redact, privacy, database, pipeline and
// report share them without import cycles.
package model
