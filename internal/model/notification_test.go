package model

import (
	"errors"
	"testing"
)

// TestNotificationCounters tests pass aggregation on a notification.
func TestNotificationCounters(t *testing.T) {
	t.Parallel()

	n := NewNotification("post.html", "<p>hi</p>", &Activity{Type: ActivityNewBlogPost})
	n.AddPass(PassStats{Kind: MediaImage, Matched: 3, Redacted: 2, Kept: 1})
	n.AddPass(PassStats{Kind: MediaAudio, Matched: 1, Redacted: 1})
	n.AddPass(PassStats{Kind: MediaVideo})

	if got := n.Redacted(MediaImage); got != 2 {
		t.Errorf("expected 2 redacted images, got %d", got)
	}
	if got := n.Redacted(MediaVideo); got != 0 {
		t.Errorf("expected 0 redacted videos, got %d", got)
	}
	if got := n.TotalRedacted(); got != 3 {
		t.Errorf("expected 3 redacted in total, got %d", got)
	}
}

// TestActivityIsNewPost tests the activity type check.
func TestActivityIsNewPost(t *testing.T) {
	t.Parallel()

	var nilActivity *Activity
	if nilActivity.IsNewPost() {
		t.Error("nil activity should not be a new post")
	}
	if (&Activity{Type: "activity_update"}).IsNewPost() {
		t.Error("activity_update should not be a new post")
	}
	if !(&Activity{Type: ActivityNewBlogPost}).IsNewPost() {
		t.Error("new_blog_post should be a new post")
	}
}

// TestNotificationFail tests that pass errors accumulate.
func TestNotificationFail(t *testing.T) {
	t.Parallel()

	first := errors.New("image_redaction: boom")
	second := errors.New("record: disk full")

	n := NewNotification("post.html", "", nil)
	n.Fail(nil)
	if n.Failed() {
		t.Fatal("nil error must not mark the notification as failed")
	}

	n.Fail(first)
	if n.Error != first || n.ErrorMessage != first.Error() {
		t.Errorf("unexpected first error: %v / %q", n.Error, n.ErrorMessage)
	}

	n.Fail(second)
	if !errors.Is(n.Error, first) || !errors.Is(n.Error, second) {
		t.Errorf("expected both errors to be kept, got %v", n.Error)
	}
	if want := "image_redaction: boom; record: disk full"; n.ErrorMessage != want {
		t.Errorf("expected message %q, got %q", want, n.ErrorMessage)
	}
	if !n.Failed() {
		t.Error("expected notification to be failed")
	}
}
