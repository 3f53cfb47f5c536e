package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/redact"
)

// PredicateFactory builds the redaction predicate for one pass.
// It receives the pass context so that predicates doing lookups can honor
// cancellation.
type PredicateFactory func(ctx context.Context) redact.Predicate

// AlwaysRedact is the PredicateFactory of passes that strip every element.
func AlwaysRedact(context.Context) redact.Predicate {
	return redact.Always
}

// MediaStep replaces the media elements of one kind with placeholder links
// pointing at the notification's post.
type MediaStep struct {
	// kind selects the element tag and the placeholder message.
	kind model.MediaKind

	// predicate builds the per-element decision. Nil redacts everything.
	predicate PredicateFactory

	// messages are the placeholder texts.
	messages redact.Messages

	// logger for structured logging.
	logger *slog.Logger
}

// MediaStepOption configures a MediaStep.
type MediaStepOption func(*MediaStep)

// WithPredicate sets how the step decides which elements to redact.
func WithPredicate(f PredicateFactory) MediaStepOption {
	return func(s *MediaStep) {
		s.predicate = f
	}
}

// WithStepMessages sets the placeholder texts.
func WithStepMessages(m redact.Messages) MediaStepOption {
	return func(s *MediaStep) {
		s.messages = m
	}
}

// WithStepLogger sets a custom logger for the step.
func WithStepLogger(logger *slog.Logger) MediaStepOption {
	return func(s *MediaStep) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMediaStep creates a redaction step for kind.
// Without WithPredicate every element of the kind is redacted.
func NewMediaStep(kind model.MediaKind, opts ...MediaStepOption) *MediaStep {
	s := &MediaStep{
		kind:     kind,
		messages: redact.DefaultMessages(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name, e.g. "image_redaction".
func (s *MediaStep) Name() string {
	return s.kind.String() + "_redaction"
}

// Kind returns the media kind the step targets.
func (s *MediaStep) Kind() model.MediaKind {
	return s.kind
}

// Do redacts n.Content and records the pass statistics.
func (s *MediaStep) Do(ctx context.Context, n *model.Notification) error {
	if !s.kind.Valid() {
		return fmt.Errorf("%s: %w", s.Name(), model.ErrUnknownMediaKind)
	}

	var shouldRedact redact.Predicate
	if s.predicate != nil {
		shouldRedact = s.predicate(ctx)
	}

	result := redact.Run(n.Content, s.kind, postLink(n), shouldRedact,
		redact.WithMessages(s.messages),
		redact.WithLogger(s.logger),
	)
	n.Content = result.HTML
	n.AddPass(result.Stats)

	if result.Stats.Redacted > 0 {
		s.logger.Debug("media redacted",
			"source", n.Source,
			"kind", s.kind,
			"matched", result.Stats.Matched,
			"redacted", result.Stats.Redacted,
			"kept", result.Stats.Kept,
		)
	}
	return nil
}

// postLink returns the sanitized post link of the notification's activity.
func postLink(n *model.Notification) string {
	if n.Activity == nil {
		return redact.DefaultLink
	}
	return SanitizeLink(n.Activity.PrimaryLink)
}

// Recorder persists a filtered notification.
// database.SiteDB implements it.
type Recorder interface {
	RecordNotification(ctx context.Context, n *model.Notification) error
}

// RecordStep appends the notification's redaction counts to a log.
// It belongs at the end of a pipeline.
type RecordStep struct {
	recorder Recorder
	logger   *slog.Logger
}

// NewRecordStep creates a step writing to recorder.
func NewRecordStep(recorder Recorder, logger *slog.Logger) *RecordStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStep{recorder: recorder, logger: logger}
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "record"
}

// Do records n.
func (s *RecordStep) Do(ctx context.Context, n *model.Notification) error {
	if err := s.recorder.RecordNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to record %s: %w", n.Source, err)
	}
	s.logger.Debug("notification recorded", "source", n.Source, "redacted", n.TotalRedacted())
	return nil
}
