package redact

import "github.com/nao1215/mediaredact/internal/model"

// Default placeholder texts.
const (
	DefaultImageMessage = "View this image by visiting the original post."
	DefaultAudioMessage = "View this audio by visiting the original post."
	DefaultVideoMessage = "View this video by visiting the original post."
	DefaultMediaMessage = "View this media by visiting the original post."
)

// Messages holds the placeholder text for each media kind.
// Callers that localize pass pre-resolved strings here.
type Messages struct {
	Image string
	Audio string
	Video string

	// Media is used for kinds without a message of their own.
	Media string
}

// DefaultMessages returns the English placeholder texts.
func DefaultMessages() Messages {
	return Messages{
		Image: DefaultImageMessage,
		Audio: DefaultAudioMessage,
		Video: DefaultVideoMessage,
		Media: DefaultMediaMessage,
	}
}

// For returns the placeholder text for kind, falling back to Media and
// then to DefaultMediaMessage when nothing more specific is set.
func (m Messages) For(kind model.MediaKind) string {
	var msg string
	switch kind {
	case model.MediaImage:
		msg = m.Image
	case model.MediaAudio:
		msg = m.Audio
	case model.MediaVideo:
		msg = m.Video
	}
	if msg != "" {
		return msg
	}
	if m.Media != "" {
		return m.Media
	}
	return DefaultMediaMessage
}
