package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/redact"
)

// ErrUnknownMessageKey is returned when an override names a key that no media kind uses.
var ErrUnknownMessageKey = errors.New("unknown message key: expected image, audio, video or media")

// DefaultLanguage is the language of the built-in texts.
var DefaultLanguage = language.English

// Keys lists every message key, fallback last.
func Keys() []string {
	keys := make([]string, 0, len(model.AllMediaKinds())+1)
	for _, kind := range model.AllMediaKinds() {
		keys = append(keys, kind.MessageKey())
	}
	return append(keys, model.MessageKeyMedia)
}

// builtin holds the English texts.
var builtin = map[string]string{
	model.MediaImage.MessageKey(): redact.DefaultImageMessage,
	model.MediaAudio.MessageKey(): redact.DefaultAudioMessage,
	model.MediaVideo.MessageKey(): redact.DefaultVideoMessage,
	model.MessageKeyMedia:         redact.DefaultMediaMessage,
}

// Catalog is a set of placeholder texts in one or more languages.
// It is safe for concurrent use once built.
type Catalog struct {
	builder *catalog.Builder

	// tags lists the catalog languages, DefaultLanguage first.
	tags    []language.Tag
	matcher language.Matcher
}

// NewCatalog builds a catalog from the built-in English texts plus
// overrides, a map of language tag to message key to text. Overrides for
// "en" replace the built-in texts. Keys missing from a language fall back
// to English.
func NewCatalog(overrides map[string]map[string]string) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))

	for key, msg := range builtin {
		if err := b.SetString(DefaultLanguage, key, escapeFormat(msg)); err != nil {
			return nil, fmt.Errorf("failed to add built-in message %q: %w", key, err)
		}
	}

	for lang, msgs := range overrides {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		for key := range msgs {
			if _, ok := builtin[key]; !ok {
				return nil, fmt.Errorf("%w: %q (language %s)", ErrUnknownMessageKey, key, lang)
			}
		}
		// Every language carries every key so lookups never depend on
		// catalog fallback rules.
		for key, fallback := range builtin {
			msg := msgs[key]
			if msg == "" {
				if tag == DefaultLanguage {
					continue
				}
				msg = fallback
			}
			if err := b.SetString(tag, key, escapeFormat(msg)); err != nil {
				return nil, fmt.Errorf("failed to add message %q for %s: %w", key, lang, err)
			}
		}
	}

	tags := withDefaultFirst(b.Languages())
	return &Catalog{
		builder: b,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Languages returns the languages the catalog has texts for.
func (c *Catalog) Languages() []string {
	names := make([]string, len(c.tags))
	for i, tag := range c.tags {
		names[i] = tag.String()
	}
	return names
}

// Translate returns the text for key in the best matching language.
// Unknown keys yield the fallback media text.
func (c *Catalog) Translate(lang, key string) string {
	if _, ok := builtin[key]; !ok {
		key = model.MessageKeyMedia
	}
	return c.printer(lang).Sprintf(key)
}

// Messages returns every placeholder text for lang, ready for redact.WithMessages.
func (c *Catalog) Messages(lang string) redact.Messages {
	p := c.printer(lang)
	return redact.Messages{
		Image: p.Sprintf(model.MediaImage.MessageKey()),
		Audio: p.Sprintf(model.MediaAudio.MessageKey()),
		Video: p.Sprintf(model.MediaVideo.MessageKey()),
		Media: p.Sprintf(model.MessageKeyMedia),
	}
}

// Match returns the catalog language chosen for lang.
func (c *Catalog) Match(lang string) language.Tag {
	requested, err := language.Parse(lang)
	if err != nil || lang == "" {
		return DefaultLanguage
	}
	_, index, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return DefaultLanguage
	}
	return c.tags[index]
}

func (c *Catalog) printer(lang string) *message.Printer {
	return message.NewPrinter(c.Match(lang), message.Catalog(c.builder))
}

// withDefaultFirst orders tags so the default language is the matcher's fallback.
func withDefaultFirst(tags []language.Tag) []language.Tag {
	ordered := []language.Tag{DefaultLanguage}
	for _, tag := range tags {
		if tag != DefaultLanguage {
			ordered = append(ordered, tag)
		}
	}
	return ordered
}

// escapeFormat keeps literal percent signs in texts from being read as verbs.
func escapeFormat(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
