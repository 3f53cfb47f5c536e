package config

import (
	"fmt"

	"github.com/nao1215/mediaredact/internal/model"
)

// Defaults are the file-level defaults for a redaction run.
type Defaults struct {
	// Link is the placeholder href used when no post link is given.
	Link string `yaml:"link,omitempty"`

	// Language selects the placeholder texts.
	Language string `yaml:"language,omitempty"`

	// Kinds are the media kinds to redact, by name.
	Kinds []string `yaml:"kinds,omitempty"`
}

// SiteEntry declares one site of the network and its visibility.
type SiteEntry struct {
	// Domain is the site's host name.
	Domain string `yaml:"domain"`

	// Path is the site's base path. Empty means "/".
	Path string `yaml:"path,omitempty"`

	// Public is the visibility code: negative values are restricted.
	Public int `yaml:"public"`
}

// File represents the structure of the .mediaredact configuration file.
type File struct {
	// Defaults apply to every run unless overridden by flags.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Sites is a static site registry used to resolve image URLs.
	Sites []SiteEntry `yaml:"sites,omitempty"`

	// Messages maps a language tag to message key ("image", "audio",
	// "video", "media") to placeholder text.
	Messages map[string]map[string]string `yaml:"messages,omitempty"`
}

// NewFile returns an empty configuration file.
func NewFile() *File {
	return &File{
		Sites:    make([]SiteEntry, 0),
		Messages: make(map[string]map[string]string),
	}
}

// ModelSites converts the site entries into model sites.
func (f *File) ModelSites() ([]model.Site, error) {
	sites := make([]model.Site, 0, len(f.Sites))
	for i, entry := range f.Sites {
		domain := model.NormalizeDomain(entry.Domain)
		if domain == "" {
			return nil, fmt.Errorf("sites[%d]: %w", i, ErrInvalidSite)
		}
		sites = append(sites, model.Site{
			Domain: domain,
			Path:   model.NormalizeSitePath(entry.Path),
			Public: model.Visibility(entry.Public),
		})
	}
	return sites, nil
}
