package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/mediaredact/internal/model"
)

// Step is one pass over a notification. Each step sees the content the
// previous one produced.
type Step interface {
	// Do rewrites n in place. A step with nothing to redact returns nil.
	Do(ctx context.Context, n *model.Notification) error

	// Name identifies the step in logs and in Notification.PerformedPasses.
	Name() string
}

// Pipeline runs redaction passes over notifications. Only notifications
// announcing a new post are touched.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later passes running after a failed one.
	continueOnError bool

	// now stamps Notification.ProcessedAt.
	now func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError makes a failed pass record its error on the
// notification and hand over to the next pass instead of stopping.
// The notification filter enables it so that audio and video are still
// stripped after an image pass fails.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a pipeline running steps in order.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends step; steps run in insertion order.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

// Execute filters n and stamps n.ProcessedAt. A notification whose
// activity does not announce a new post keeps its content and runs no pass.
//
// Cancellation is only observed between passes, so n.Content is always the
// output of whole passes. Pass errors are accumulated on n with
// Notification.Fail. Without continueOnError the first one is returned;
// otherwise Execute returns nil unless ctx ends.
func (p *Pipeline) Execute(ctx context.Context, n *model.Notification) error {
	defer func() { n.ProcessedAt = p.now() }()

	if !n.Activity.IsNewPost() {
		p.logger.Debug("not a new post, content left as is", "source", n.Source)
		return nil
	}

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("redaction cancelled",
				"source", n.Source,
				"next_pass", step.Name(),
				"reason", err,
			)
			n.Fail(err)
			return err
		}

		if err := p.runPass(ctx, step, n); err != nil && !p.continueOnError {
			return err
		}
	}

	if n.TotalRedacted() > 0 {
		p.logger.Debug("notification filtered",
			"source", n.Source,
			"images", n.Redacted(model.MediaImage),
			"audio", n.Redacted(model.MediaAudio),
			"video", n.Redacted(model.MediaVideo),
		)
	}
	return nil
}

// runPass runs one step and records it on n.
func (p *Pipeline) runPass(ctx context.Context, step Step, n *model.Notification) error {
	before := n.TotalRedacted()
	err := step.Do(ctx, n)
	n.PerformedPasses = append(n.PerformedPasses, step.Name())

	if err != nil {
		p.logger.Error("pass failed",
			"pass", step.Name(),
			"source", n.Source,
			"error", err,
		)
		n.Fail(err)
		return err
	}

	p.logger.Debug("pass done",
		"pass", step.Name(),
		"source", n.Source,
		"redacted", n.TotalRedacted()-before,
	)
	return nil
}
