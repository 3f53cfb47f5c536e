// Package i18n resolves the placeholder texts inserted by the redactor.
//
// Texts live in a golang.org/x/text message catalog keyed by media kind
// ("image", "audio", "video" and the fallback "media"). English is always
// present; other languages come from configuration. Lookups match the
// requested BCP 47 tag against the available languages, so "en-GB" or
// "es-MX" find "en" or "es".
package i18n
