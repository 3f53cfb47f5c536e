package model

import (
	"errors"
	"time"
)

// PassStats records what one redaction pass did to a notification.
type PassStats struct {
	// Kind is the media kind of the pass.
	Kind MediaKind `json:"kind"`

	// Matched is the number of elements of the kind found in the content.
	Matched int `json:"matched"`

	// Redacted is the number of elements replaced by a placeholder link.
	Redacted int `json:"redacted"`

	// Kept is the number of elements the predicate declined to redact.
	Kept int `json:"kept"`

	// Skipped is the number of elements no longer attached to the document.
	Skipped int `json:"skipped"`
}

// Notification is one outbound email body moving through the filter.
type Notification struct {
	// Source names where the content came from (file name, message ID).
	Source string `json:"source"`

	// Content is the HTML body. Passes replace it with their output.
	Content string `json:"-"`

	// Activity is the activity record the notification announces.
	Activity *Activity `json:"activity,omitempty"`

	// Action is the host's action label for the activity.
	Action string `json:"action,omitempty"`

	// Group is the group the notification is sent for, if any.
	Group *Group `json:"group,omitempty"`

	// Passes holds per-kind statistics in execution order.
	Passes []PassStats `json:"passes"`

	// PerformedPasses lists the names of the steps that ran.
	PerformedPasses []string `json:"performed_passes"`

	// ProcessedAt is when filtering finished.
	ProcessedAt time.Time `json:"processed_at"`

	// Error joins every pass error, if any.
	Error error `json:"-"`

	// ErrorMessage lists the pass errors separated by "; ".
	ErrorMessage string `json:"error,omitempty"`
}

// NewNotification creates a notification for content announced by activity.
func NewNotification(source, content string, activity *Activity) *Notification {
	return &Notification{
		Source:          source,
		Content:         content,
		Activity:        activity,
		Passes:          make([]PassStats, 0, len(mediaKindTable)),
		PerformedPasses: make([]string, 0, len(mediaKindTable)),
	}
}

// AddPass appends the statistics of a completed pass.
func (n *Notification) AddPass(stats PassStats) {
	n.Passes = append(n.Passes, stats)
}

// Redacted returns the number of placeholders inserted for kind.
func (n *Notification) Redacted(kind MediaKind) int {
	total := 0
	for _, p := range n.Passes {
		if p.Kind == kind {
			total += p.Redacted
		}
	}
	return total
}

// TotalRedacted returns the number of placeholders inserted across all passes.
func (n *Notification) TotalRedacted() int {
	total := 0
	for _, p := range n.Passes {
		total += p.Redacted
	}
	return total
}

// Fail records a pass error. Earlier errors are kept, so errors.Is finds
// each of them on n.Error.
func (n *Notification) Fail(err error) {
	if err == nil {
		return
	}
	if n.Error == nil {
		n.Error = err
		n.ErrorMessage = err.Error()
		return
	}
	n.Error = errors.Join(n.Error, err)
	n.ErrorMessage += "; " + err.Error()
}

// Failed reports whether any pass failed.
func (n *Notification) Failed() bool {
	return n.Error != nil || n.ErrorMessage != ""
}
