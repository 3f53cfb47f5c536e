// Package config provides configuration structures and utilities for mediaredact.
// It defines the options of a redaction run, the YAML configuration file
// with its static site registry and localized texts, and XDG locations.
package config
