// Package pipeline runs redaction passes over outbound notifications.
//
// A notification announcing a new post is rewritten by one MediaStep per
// media kind, in the order image, audio, video. Images are redacted only
// when the privacy predicate says their source site is restricted; audio
// and video are always replaced. Each pass hands a fresh HTML string to
// the next one.
//
// Pipeline.Execute decides whether a notification needs filtering at all,
// stamps it and collects pass errors on it. Filter is the entry point used
// by the host and builds the pipeline. The BatchProcessor applies the same
// pipeline to many notifications concurrently with errgroup.
package pipeline
