package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/mediaredact/internal/model"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default PostLink is #", func(t *testing.T) {
		t.Parallel()
		if cfg.PostLink != "#" {
			t.Errorf("expected PostLink to be '#', got '%s'", cfg.PostLink)
		}
	})

	t.Run("default Kinds are image, audio, video", func(t *testing.T) {
		t.Parallel()
		expected := []model.MediaKind{model.MediaImage, model.MediaAudio, model.MediaVideo}
		if !sameKinds(cfg.Kinds, expected) {
			t.Errorf("expected Kinds %v, got %v", expected, cfg.Kinds)
		}
	})

	t.Run("default Language is en", func(t *testing.T) {
		t.Parallel()
		if cfg.Language != "en" {
			t.Errorf("expected Language to be 'en', got '%s'", cfg.Language)
		}
	})

	t.Run("default BatchSize is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Summary is none", func(t *testing.T) {
		t.Parallel()
		if cfg.Summary != SummaryNone {
			t.Errorf("expected Summary to be none, got %q", cfg.Summary)
		}
	})

	t.Run("default DBDir is XDG data dir", func(t *testing.T) {
		t.Parallel()
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
		if !strings.HasSuffix(cfg.DBDir, AppName) {
			t.Errorf("expected DBDir to end with %q, got %q", AppName, cfg.DBDir)
		}
	})

	t.Run("default database use is off", func(t *testing.T) {
		t.Parallel()
		if cfg.UseDB || cfg.Record {
			t.Error("expected UseDB and Record to be false")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"default config is valid", func(*Config) {}, nil},
		{"empty kinds", func(c *Config) { c.Kinds = nil }, ErrNoKinds},
		{"unknown kind", func(c *Config) { c.Kinds = []model.MediaKind{model.MediaKind(9)} }, ErrNoKinds},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"negative batch size", func(c *Config) { c.BatchSize = -1 }, ErrInvalidBatchSize},
		{"zero max input size", func(c *Config) { c.MaxInputSize = 0 }, ErrInvalidMaxInputSize},
		{"unknown summary", func(c *Config) { c.Summary = "html" }, ErrInvalidSummaryFormat},
		{"markdown summary", func(c *Config) { c.Summary = SummaryMarkdown }, nil},
		{"record without db", func(c *Config) { c.Record = true }, ErrRecordWithoutDB},
		{"record with db", func(c *Config) { c.Record = true; c.UseDB = true }, nil},
		{"db without dir", func(c *Config) { c.UseDB = true; c.DBDir = "" }, ErrNoDBDir},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestApplyDefaults tests merging file defaults into flag values.
func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	file := &File{Defaults: Defaults{
		Link:     "https://site/",
		Language: "es",
		Kinds:    []string{"video", "image"},
	}}

	t.Run("file fills unset options", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := cfg.ApplyDefaults(file); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostLink != "https://site/" {
			t.Errorf("expected link from file, got %q", cfg.PostLink)
		}
		if cfg.Language != "es" {
			t.Errorf("expected language from file, got %q", cfg.Language)
		}
		if !sameKinds(cfg.Kinds, []model.MediaKind{model.MediaVideo, model.MediaImage}) {
			t.Errorf("expected kinds from file, got %v", cfg.Kinds)
		}
		if cfg.File != file {
			t.Error("expected File to be set")
		}
	})

	t.Run("flags win over file", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.PostLink = "https://flag/"
		cfg.Language = "fr"
		cfg.Kinds = []model.MediaKind{model.MediaAudio}
		if err := cfg.ApplyDefaults(file); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostLink != "https://flag/" || cfg.Language != "fr" {
			t.Errorf("flags were overridden: %q %q", cfg.PostLink, cfg.Language)
		}
		if !sameKinds(cfg.Kinds, []model.MediaKind{model.MediaAudio}) {
			t.Errorf("kinds were overridden: %v", cfg.Kinds)
		}
	})

	t.Run("invalid kind in file", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		err := cfg.ApplyDefaults(&File{Defaults: Defaults{Kinds: []string{"iframe"}}})
		if !errors.Is(err, model.ErrUnknownMediaKind) {
			t.Errorf("expected ErrUnknownMediaKind, got %v", err)
		}
	})

	t.Run("nil file is a no-op", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := cfg.ApplyDefaults(nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestParseKinds tests kind list parsing.
func TestParseKinds(t *testing.T) {
	t.Parallel()

	kinds, err := ParseKinds([]string{"audio", "img", "audio"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameKinds(kinds, []model.MediaKind{model.MediaAudio, model.MediaImage}) {
		t.Errorf("unexpected kinds: %v", kinds)
	}

	if _, err := ParseKinds([]string{"embed"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

// TestLoadConfigFile tests YAML configuration loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads full file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `defaults:
  link: "https://site/post"
  language: es
  kinds: [image, video]
sites:
  - domain: private.example
    public: -1
  - domain: Network.Example
    path: biology
    public: -2
messages:
  es:
    image: "Vea esta imagen en la publicación original."
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Defaults.Link != "https://site/post" || f.Defaults.Language != "es" {
			t.Errorf("unexpected defaults: %+v", f.Defaults)
		}
		if len(f.Defaults.Kinds) != 2 {
			t.Errorf("expected 2 kinds, got %v", f.Defaults.Kinds)
		}
		if f.Messages["es"]["image"] == "" {
			t.Error("expected Spanish image message")
		}

		sites, err := f.ModelSites()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sites) != 2 {
			t.Fatalf("expected 2 sites, got %d", len(sites))
		}
		if sites[0].Path != "/" || !sites[0].IsRestricted() {
			t.Errorf("unexpected first site: %+v", sites[0])
		}
		if sites[1].Domain != "network.example" || sites[1].Path != "/biology/" || sites[1].Public != model.VisibilityMembersOnly {
			t.Errorf("unexpected second site: %+v", sites[1])
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("sites: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("empty file gives initialized maps", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "empty.yaml")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Sites == nil || f.Messages == nil {
			t.Error("expected initialized collections")
		}
	})

	t.Run("site without domain is rejected", func(t *testing.T) {
		t.Parallel()
		f := &File{Sites: []SiteEntry{{Path: "/x/"}}}
		if _, err := f.ModelSites(); !errors.Is(err, ErrInvalidSite) {
			t.Errorf("expected ErrInvalidSite, got %v", err)
		}
	})
}

// TestFindConfigFile tests configuration file discovery with an explicit path.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
