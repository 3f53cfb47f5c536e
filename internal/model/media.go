package model

import (
	"errors"
	"strings"
)

// ErrUnknownMediaKind is returned by ParseMediaKind for names outside the enumeration.
var ErrUnknownMediaKind = errors.New("unknown media kind: expected image, audio or video")

// MediaKind selects which embedded media element a redaction pass targets.
//
// The set is closed. Adding a kind means adding a constant here and a row
// to mediaKindTable; nothing else switches on the kind name.
type MediaKind int

const (
	// MediaImage targets <img> elements.
	MediaImage MediaKind = iota

	// MediaAudio targets <audio> elements.
	MediaAudio

	// MediaVideo targets <video> elements.
	MediaVideo
)

// MessageKeyMedia is the message key used when a kind has no message of its own.
const MessageKeyMedia = "media"

// mediaKindInfo is one row of the kind mapping table.
type mediaKindInfo struct {
	name       string
	tag        string
	messageKey string
}

var mediaKindTable = map[MediaKind]mediaKindInfo{
	MediaImage: {name: "image", tag: "img", messageKey: "image"},
	MediaAudio: {name: "audio", tag: "audio", messageKey: "audio"},
	MediaVideo: {name: "video", tag: "video", messageKey: "video"},
}

// AllMediaKinds returns every kind in the order the notification filter runs them.
func AllMediaKinds() []MediaKind {
	return []MediaKind{MediaImage, MediaAudio, MediaVideo}
}

// String returns the kind name ("image", "audio", "video") or "unknown".
func (k MediaKind) String() string {
	if info, ok := mediaKindTable[k]; ok {
		return info.name
	}
	return "unknown"
}

// Tag returns the HTML tag name matched by this kind.
// Unknown kinds return an empty string and match nothing.
func (k MediaKind) Tag() string {
	return mediaKindTable[k].tag
}

// MessageKey returns the localization key of the placeholder text.
func (k MediaKind) MessageKey() string {
	if info, ok := mediaKindTable[k]; ok {
		return info.messageKey
	}
	return MessageKeyMedia
}

// Valid reports whether k is part of the enumeration.
func (k MediaKind) Valid() bool {
	_, ok := mediaKindTable[k]
	return ok
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by name.
func (k MediaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseMediaKind converts a kind name (or its tag name) into a MediaKind.
// Matching is case-insensitive.
func ParseMediaKind(s string) (MediaKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, info := range mediaKindTable {
		if s == info.name || s == info.tag {
			return kind, nil
		}
	}
	return 0, ErrUnknownMediaKind
}
