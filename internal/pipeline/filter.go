package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"github.com/nao1215/mediaredact/internal/model"
	"github.com/nao1215/mediaredact/internal/privacy"
	"github.com/nao1215/mediaredact/internal/redact"
)

// Filter rewrites notification bodies so that they carry no media from
// restricted sites.
type Filter struct {
	checker  *privacy.Checker
	kinds    []model.MediaKind
	messages redact.Messages
	recorder Recorder
	logger   *slog.Logger
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithKinds selects the media kinds to redact, in order.
// The default is image, audio, video.
func WithKinds(kinds ...model.MediaKind) FilterOption {
	return func(f *Filter) {
		if len(kinds) > 0 {
			f.kinds = kinds
		}
	}
}

// WithMessages sets the placeholder texts.
func WithMessages(m redact.Messages) FilterOption {
	return func(f *Filter) {
		f.messages = m
	}
}

// WithRecorder appends every filtered notification to recorder.
func WithRecorder(r Recorder) FilterOption {
	return func(f *Filter) {
		f.recorder = r
	}
}

// WithFilterLogger sets the logger passed down to the pipeline and steps.
func WithFilterLogger(logger *slog.Logger) FilterOption {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFilter creates a Filter that decides image visibility with checker.
// A nil checker treats every image as public.
func NewFilter(checker *privacy.Checker, opts ...FilterOption) *Filter {
	f := &Filter{
		checker:  checker,
		kinds:    model.AllMediaKinds(),
		messages: redact.DefaultMessages(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.checker == nil {
		f.checker = privacy.NewChecker(nil, privacy.WithLogger(f.logger))
	}

	return f
}

// Filter returns content with media redacted when activity announces a
// new post, and content unchanged otherwise. action and group are carried
// along for the recorder and never influence the result.
func (f *Filter) Filter(ctx context.Context, content string, activity *model.Activity, action string, group *model.Group) string {
	if !activity.IsNewPost() {
		return content
	}

	n := model.NewNotification(activity.PrimaryLink, content, activity)
	n.Action = action
	n.Group = group
	if err := f.Apply(ctx, n); err != nil {
		f.logger.Warn("notification filtering incomplete", "error", err)
	}
	return n.Content
}

// Apply runs a fresh pipeline over n in place.
// Notifications whose activity is not a new post are left untouched.
func (f *Filter) Apply(ctx context.Context, n *model.Notification) error {
	return f.Pipeline().Execute(ctx, n)
}

// Pipeline builds a fresh pipeline with one step per configured kind,
// followed by the record step when a recorder is set.
func (f *Filter) Pipeline() *Pipeline {
	p := New(WithLogger(f.logger), WithContinueOnError(true))
	for _, kind := range f.kinds {
		p.AddStep(NewMediaStep(kind,
			WithPredicate(f.predicateFor(kind)),
			WithStepMessages(f.messages),
			WithStepLogger(f.logger),
		))
	}
	if f.recorder != nil {
		p.AddStep(NewRecordStep(f.recorder, f.logger))
	}
	return p
}

// predicateFor returns the decision rule of kind: images are checked
// against the site registry, audio and video are always stripped.
func (f *Filter) predicateFor(kind model.MediaKind) PredicateFactory {
	if kind == model.MediaImage {
		return f.checker.Predicate
	}
	return AlwaysRedact
}

// SanitizeLink makes an activity link safe to use as an href.
// Absolute http and https URLs and relative references are kept after
// trimming; anything else (javascript:, data:, unparsable input) and the
// empty string become redact.DefaultLink.
func SanitizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return redact.DefaultLink
	}
	if strings.IndexFunc(link, unicode.IsControl) >= 0 {
		return redact.DefaultLink
	}

	u, err := url.Parse(link)
	if err != nil {
		return redact.DefaultLink
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return redact.DefaultLink
		}
		return link
	case "":
		return link
	default:
		return redact.DefaultLink
	}
}
