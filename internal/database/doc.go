// Package database provides SQLite-based storage for mediaredact.
//
// The SiteDB stores:
//   - The sites of the network with their visibility code, used to resolve
//     media URLs when deciding whether an image must be redacted
//   - A log of filtered notifications with per-kind redaction counts
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// binary cross-compiles and the registry is a single file in the XDG data
// directory.
package database
