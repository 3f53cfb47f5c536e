package model

import "time"

// Summary condenses a batch of filtered notifications for reporting.
type Summary struct {
	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Notifications is the number of notifications in the batch.
	Notifications int `json:"notifications"`

	// Images, Audio and Video are placeholders inserted per kind.
	Images int `json:"images"`
	Audio  int `json:"audio"`
	Video  int `json:"video"`

	// Kept is the number of media elements found on public sites and left in place.
	Kept int `json:"kept"`

	// Failed is the number of notifications whose filtering recorded an error.
	Failed int `json:"failed"`

	// Entries has one row per notification, in batch order.
	Entries []SummaryEntry `json:"entries"`
}

// SummaryEntry is the outcome for one notification.
type SummaryEntry struct {
	Source   string `json:"source"`
	PostLink string `json:"post_link,omitempty"`
	Images   int    `json:"images"`
	Audio    int    `json:"audio"`
	Video    int    `json:"video"`
	Kept     int    `json:"kept"`
	Error    string `json:"error,omitempty"`
}

// NewSummary builds a summary of notifications. Nil entries are ignored.
func NewSummary(notifications []*Notification) *Summary {
	s := &Summary{
		GeneratedAt: time.Now(),
		Entries:     make([]SummaryEntry, 0, len(notifications)),
	}

	for _, n := range notifications {
		if n == nil {
			continue
		}
		entry := SummaryEntry{
			Source: n.Source,
			Images: n.Redacted(MediaImage),
			Audio:  n.Redacted(MediaAudio),
			Video:  n.Redacted(MediaVideo),
			Error:  n.ErrorMessage,
		}
		if n.Activity != nil {
			entry.PostLink = n.Activity.PrimaryLink
		}
		for _, p := range n.Passes {
			entry.Kept += p.Kept
		}

		s.Notifications++
		s.Images += entry.Images
		s.Audio += entry.Audio
		s.Video += entry.Video
		s.Kept += entry.Kept
		if entry.Error != "" {
			s.Failed++
		}
		s.Entries = append(s.Entries, entry)
	}

	return s
}

// TotalRedacted returns the number of placeholders across all kinds.
func (s *Summary) TotalRedacted() int {
	return s.Images + s.Audio + s.Video
}

// HasRedactions reports whether any media was replaced.
func (s *Summary) HasRedactions() bool {
	return s.TotalRedacted() > 0
}

// Redacted returns the number of placeholders inserted for kind.
func (s *Summary) Redacted(kind MediaKind) int {
	switch kind {
	case MediaImage:
		return s.Images
	case MediaAudio:
		return s.Audio
	case MediaVideo:
		return s.Video
	default:
		return 0
	}
}
