package i18n

import (
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/redact"
)

// TestNewCatalogDefaults tests the built-in English texts.
func TestNewCatalogDefaults(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Messages("en")
	if got != redact.DefaultMessages() {
		t.Errorf("expected default messages, got %+v", got)
	}

	t.Run("unknown language falls back to English", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("ja", "video"); got != redact.DefaultVideoMessage {
			t.Errorf("got %q", got)
		}
	})

	t.Run("invalid language falls back to English", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("not a tag!", "audio"); got != redact.DefaultAudioMessage {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown key uses media text", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("en", "iframe"); got != redact.DefaultMediaMessage {
			t.Errorf("got %q", got)
		}
	})
}

// TestNewCatalogOverrides tests per-language texts from configuration.
func TestNewCatalogOverrides(t *testing.T) {
	t.Parallel()

	c, err := NewCatalog(map[string]map[string]string{
		"es": {
			"image": "Vea esta imagen en la publicación original.",
			"media": "Vea este contenido en la publicación original.",
		},
		"en": {
			"audio": "Listen on the site (100% free).",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("regional tag matches base language", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("es-MX", "image"); got != "Vea esta imagen en la publicación original." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("missing key falls back to English", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("es", "video"); got != redact.DefaultVideoMessage {
			t.Errorf("got %q", got)
		}
	})

	t.Run("English override keeps percent sign", func(t *testing.T) {
		t.Parallel()
		if got := c.Translate("en", "audio"); got != "Listen on the site (100% free)." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("match picks catalog language", func(t *testing.T) {
		t.Parallel()
		if got := c.Match("es-AR"); got != language.Spanish {
			t.Errorf("expected es, got %v", got)
		}
		if got := c.Match(""); got != language.English {
			t.Errorf("expected en, got %v", got)
		}
	})

	t.Run("languages lists both", func(t *testing.T) {
		t.Parallel()
		langs := c.Languages()
		if len(langs) != 2 {
			t.Errorf("expected 2 languages, got %v", langs)
		}
	})
}

// TestNewCatalogErrors tests invalid overrides.
func TestNewCatalogErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := NewCatalog(map[string]map[string]string{"fr": {"iframe": "x"}})
		if !errors.Is(err, ErrUnknownMessageKey) {
			t.Errorf("expected ErrUnknownMessageKey, got %v", err)
		}
	})

	t.Run("invalid language", func(t *testing.T) {
		t.Parallel()
		_, err := NewCatalog(map[string]map[string]string{"???": {"image": "x"}})
		if err == nil {
			t.Error("expected error for invalid language")
		}
	})
}

// TestKeys tests the key list order.
func TestKeys(t *testing.T) {
	t.Parallel()

	keys := Keys()
	expected := []string{"image", "audio", "video", model.MessageKeyMedia}
	if len(keys) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, keys)
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("keys[%d] = %q, expected %q", i, keys[i], expected[i])
		}
	}
}
