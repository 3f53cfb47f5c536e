package model

import "testing"

func TestNewSummary(t *testing.T) {
	t.Parallel()

	post := &Activity{Type: ActivityNewBlogPost, PrimaryLink: "https://example.org/post/"}

	first := NewNotification("a.html", "", post)
	first.AddPass(PassStats{Kind: MediaImage, Matched: 3, Redacted: 2, Kept: 1})
	first.AddPass(PassStats{Kind: MediaVideo, Matched: 1, Redacted: 1})

	second := NewNotification("b.html", "", nil)
	second.AddPass(PassStats{Kind: MediaAudio, Matched: 1, Redacted: 1})
	second.ErrorMessage = "context canceled"

	s := NewSummary([]*Notification{first, nil, second})

	if s.Notifications != 2 {
		t.Errorf("Notifications = %d, want 2", s.Notifications)
	}
	if s.Images != 2 || s.Audio != 1 || s.Video != 1 {
		t.Errorf("per-kind totals = %d/%d/%d, want 2/1/1", s.Images, s.Audio, s.Video)
	}
	if s.Kept != 1 {
		t.Errorf("Kept = %d, want 1", s.Kept)
	}
	if s.Failed != 1 {
		t.Errorf("Failed = %d, want 1", s.Failed)
	}
	if s.TotalRedacted() != 4 || !s.HasRedactions() {
		t.Errorf("TotalRedacted = %d, want 4", s.TotalRedacted())
	}
	if s.Redacted(MediaImage) != 2 || s.Redacted(MediaKind(9)) != 0 {
		t.Error("Redacted returned wrong per-kind count")
	}

	if len(s.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(s.Entries))
	}
	if s.Entries[0].PostLink != post.PrimaryLink {
		t.Errorf("PostLink = %q, want %q", s.Entries[0].PostLink, post.PrimaryLink)
	}
	if s.Entries[1].Source != "b.html" || s.Entries[1].Error == "" {
		t.Errorf("unexpected second entry: %+v", s.Entries[1])
	}
}

func TestNewSummary_Empty(t *testing.T) {
	t.Parallel()

	s := NewSummary(nil)
	if s.Notifications != 0 || s.HasRedactions() {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if s.Entries == nil {
		t.Error("Entries should be non-nil for stable JSON output")
	}
}
